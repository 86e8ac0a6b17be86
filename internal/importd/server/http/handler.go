package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vinsync-io/vinsync/internal/importd/core/service"
	"github.com/vinsync-io/vinsync/internal/importd/scheduler"
	"github.com/vinsync-io/vinsync/pkg/log"
)

const defaultLogLines = 20

type handler struct {
	svc   *service.Service
	sched *scheduler.Scheduler
}

type statusResponse struct {
	service.Status
	NextRun time.Time `json:"next_run"`
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: st, NextRun: h.sched.NextRun()})
}

func (h *handler) logs(w http.ResponseWriter, r *http.Request) {
	lines := defaultLogLines
	if raw := r.URL.Query().Get("lines"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "lines must be a positive integer")
			return
		}
		lines = n
	}

	entries, err := h.svc.Logs(lines)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": entries})
}

func (h *handler) vehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.svc.ListEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

// runNow triggers a batch synchronously. An overlapping run is a conflict,
// not a queue entry.
func (h *handler) runNow(w http.ResponseWriter, r *http.Request) {
	err := h.svc.ProcessBatch(r.Context(), service.TriggerManual)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"result": "batch completed"})
	case errors.Is(err, service.ErrRunInProgress):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *handler) resetOffset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetOffset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "offset reset"})
}

func (h *handler) setBatchSize(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Size int `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.SetBatchSize(r.Context(), body.Size)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"result": "batch size updated", "size": body.Size})
	case errors.Is(err, service.ErrInvalidBatchSize):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *handler) togglePause(w http.ResponseWriter, r *http.Request) {
	paused, err := h.svc.TogglePause(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"paused": paused})
}

func (h *handler) manualImport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VIN string `json:"vin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.ImportByVIN(r.Context(), body.VIN)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"result": "imported", "vin": body.VIN})
	case errors.Is(err, service.ErrMissingVIN):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSearchExhausted):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
