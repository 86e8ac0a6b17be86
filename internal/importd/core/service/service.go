package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/log"
)

// Sentinel errors surfaced to the control layer.
var (
	// ErrRunInProgress is returned when a batch run is requested while
	// another one is still executing. Requests are rejected, not queued.
	ErrRunInProgress = errors.New("a batch run is already in progress")

	// ErrPaused is returned to the scheduler path when the import is paused.
	ErrPaused = errors.New("import is paused")

	// ErrMissingVIN rejects a manual import without a VIN.
	ErrMissingVIN = errors.New("vin not provided")

	// ErrVehicleNotFound means the upstream ran out of pages before the VIN
	// was seen.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrSearchExhausted means the search page bound was hit without the
	// upstream signalling a last page. Distinct from not-found.
	ErrSearchExhausted = errors.New("search page bound reached")

	// ErrInvalidBatchSize rejects a batch size outside the allowed set.
	ErrInvalidBatchSize = errors.New("invalid batch size")
)

// Trigger identifies what started a batch run.
type Trigger string

const (
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
)

// Service is the import reconciliation engine. It is stateless apart from
// the run-lifecycle state machine; all persistent state lives behind the
// injected collaborators.
type Service struct {
	inventory core.InventoryAPI
	catalog   core.Catalog
	media     core.MediaStore
	settings  core.SettingsStore
	sink      core.LogSink
	notifier  core.EventNotifier

	lifecycle *lifecycle

	maxSearchPages int
}

// New creates the import engine with its collaborators injected.
func New(
	inventory core.InventoryAPI,
	catalog core.Catalog,
	media core.MediaStore,
	settings core.SettingsStore,
	sink core.LogSink,
	notifier core.EventNotifier,
	maxSearchPages int,
) *Service {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Service{
		inventory:      inventory,
		catalog:        catalog,
		media:          media,
		settings:       settings,
		sink:           sink,
		notifier:       notifier,
		lifecycle:      newLifecycle(),
		maxSearchPages: maxSearchPages,
	}
}

// Status is a snapshot of the engine and its cursor.
type Status struct {
	State     string `json:"state"`
	Offset    int    `json:"offset"`
	BatchSize int    `json:"batch_size"`
	Paused    bool   `json:"paused"`
}

// Status reports the current engine state and cursor.
func (s *Service) Status(ctx context.Context) (Status, error) {
	cursor, err := s.settings.Cursor(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		State:     s.lifecycle.Current(),
		Offset:    cursor.Offset,
		BatchSize: cursor.BatchSize,
		Paused:    cursor.Paused,
	}, nil
}

// ResetOffset sets the cursor offset back to 0 on operator request.
func (s *Service) ResetOffset(ctx context.Context) error {
	if err := s.settings.SetOffset(ctx, 0); err != nil {
		return err
	}
	s.sink.Append("Offset reset to 0 by operator request.")
	return nil
}

// TogglePause flips the paused flag and returns the new state.
func (s *Service) TogglePause(ctx context.Context) (bool, error) {
	cursor, err := s.settings.Cursor(ctx)
	if err != nil {
		return false, err
	}
	paused := !cursor.Paused
	if err := s.settings.SetPaused(ctx, paused); err != nil {
		return false, err
	}
	if paused {
		s.sink.Append("Import paused.")
	} else {
		s.sink.Append("Import resumed.")
	}
	return paused, nil
}

// SetBatchSize validates size against the allowed set and persists it.
// An invalid size leaves the stored value untouched.
func (s *Service) SetBatchSize(ctx context.Context, size int) error {
	if !model.ValidBatchSize(size) {
		return fmt.Errorf("%w: %d (allowed: %v)", ErrInvalidBatchSize, size, model.BatchSizes())
	}
	if err := s.settings.SetBatchSize(ctx, size); err != nil {
		return err
	}
	s.sink.Append(fmt.Sprintf("Batch size set to: %d", size))
	return nil
}

// ListEntries returns every imported vehicle from the catalog.
func (s *Service) ListEntries(ctx context.Context) ([]model.CatalogVehicle, error) {
	return s.catalog.ListEntries(ctx)
}

// Logs returns the last n operator log lines, oldest first.
func (s *Service) Logs(n int) ([]model.LogLine, error) {
	return s.sink.Tail(n)
}

func (s *Service) notify(ctx context.Context, event *model.ImportEvent) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		log.Warn("failed to publish import event", "vin", event.VIN, "err", err)
	}
}
