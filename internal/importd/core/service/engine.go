package service

import (
	"context"

	"github.com/vinsync-io/vinsync/internal/pkg/metrics"
	"github.com/vinsync-io/vinsync/pkg/log"
)

// ProcessBatch runs one incremental import cycle: it derives the upstream
// page from the cursor, imports up to batch-size records from it and
// advances the offset by the number attempted, duplicates included.
//
// The offset is persisted only after the whole batch completes. A crash
// mid-batch redoes the batch (at-least-once), it never persists a partial
// offset. An empty page resets the offset to 0; a transient upstream outage
// is indistinguishable from true end-of-data here and also restarts from
// page 1, which is the accepted trade-off.
func (s *Service) ProcessBatch(ctx context.Context, trigger Trigger) error {
	cursor, err := s.settings.Cursor(ctx)
	if err != nil {
		return err
	}

	// Pause only gates the scheduler; manual triggers are an operator override.
	if trigger == TriggerSchedule && cursor.Paused {
		s.sink.Append("Import is paused, scheduled batch skipped.")
		return ErrPaused
	}

	if err := s.lifecycle.begin(ctx); err != nil {
		return err
	}
	metrics.BatchRunsTotal.WithLabelValues(string(trigger)).Inc()

	page := cursor.Page()
	records := s.inventory.FetchPage(ctx, page)
	if len(records) == 0 {
		if err := s.settings.SetOffset(ctx, 0); err != nil {
			s.lifecycle.abort(ctx)
			return err
		}
		metrics.OffsetResetsTotal.Inc()
		s.sink.Append("No vehicles fetched. Offset reset.")
		s.lifecycle.abort(ctx)
		return nil
	}

	s.lifecycle.advance(ctx, eventReconcile)

	// The upstream page is nominally at most batch-size already; the slice
	// is defensive, a batch never spans upstream pages.
	batch := records
	if len(batch) > cursor.BatchSize {
		batch = batch[:cursor.BatchSize]
	}

	offset := cursor.Offset
	for _, rec := range batch {
		if err := ctx.Err(); err != nil {
			// Killed mid-batch: nothing persisted, the next run redoes the page.
			s.lifecycle.abort(ctx)
			return err
		}
		if _, err := s.importVehicle(ctx, rec); err != nil {
			log.Error(err, "vehicle import failed", "vin", rec.VIN)
			metrics.ImportsTotal.WithLabelValues("failed").Inc()
		}
		offset++
	}

	s.lifecycle.advance(ctx, eventPersist)
	if err := s.settings.SetOffset(ctx, offset); err != nil {
		s.lifecycle.abort(ctx)
		return err
	}
	s.lifecycle.advance(ctx, eventFinish)

	log.Info("batch completed", "trigger", string(trigger), "page", page, "processed", len(batch), "offset", offset)
	return nil
}
