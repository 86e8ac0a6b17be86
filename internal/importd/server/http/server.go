// Package http exposes the control API: operator actions on the import
// engine plus health and metrics endpoints.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinsync-io/vinsync/internal/importd/core/service"
	"github.com/vinsync-io/vinsync/internal/importd/scheduler"
	"github.com/vinsync-io/vinsync/internal/pkg/metrics"
	"github.com/vinsync-io/vinsync/pkg/log"
	"github.com/vinsync-io/vinsync/pkg/options"
)

type Server struct {
	server  *http.Server
	options *options.HttpOptions
}

// NewServer builds the control API server. Everything under /api/v1
// requires the bearer token; probes and metrics stay open.
func NewServer(opts *options.HttpOptions, svc *service.Service, sched *scheduler.Scheduler) *Server {
	h := &handler{svc: svc, sched: sched}

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(bearerAuth(opts.AuthToken))

	api.HandleFunc("/status", h.status).Methods(http.MethodGet)
	api.HandleFunc("/logs", h.logs).Methods(http.MethodGet)
	api.HandleFunc("/vehicles", h.vehicles).Methods(http.MethodGet)
	api.HandleFunc("/run-now", h.runNow).Methods(http.MethodPost)
	api.HandleFunc("/reset-offset", h.resetOffset).Methods(http.MethodPost)
	api.HandleFunc("/batch-size", h.setBatchSize).Methods(http.MethodPost)
	api.HandleFunc("/toggle-pause", h.togglePause).Methods(http.MethodPost)
	api.HandleFunc("/manual-import", h.manualImport).Methods(http.MethodPost)

	return &Server{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      r,
			ReadTimeout:  opts.Timeout,
			WriteTimeout: opts.Timeout,
		},
		options: opts,
	}
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start(ctx context.Context) error {
	log.Info("Starting HTTP Server", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
