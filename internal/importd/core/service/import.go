package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/internal/pkg/metrics"
	"github.com/vinsync-io/vinsync/pkg/log"
)

// importVehicle creates a catalog entry for one vehicle. It is idempotent:
// a VIN that already has an entry is a logged skip, never an update.
func (s *Service) importVehicle(ctx context.Context, rec model.VehicleRecord) (string, error) {
	vin := strings.TrimSpace(rec.VIN)
	if vin == "" {
		// Upstream rows without a VIN are unusable; drop quietly.
		return "", nil
	}

	if _, ok, err := s.catalog.FindByVIN(ctx, vin); err != nil {
		return "", fmt.Errorf("dedup lookup for %s: %w", vin, err)
	} else if ok {
		s.sink.Append(fmt.Sprintf("Already exists: %s", vin))
		metrics.ImportsTotal.WithLabelValues("skipped").Inc()
		s.notify(ctx, &model.ImportEvent{VIN: vin, Action: model.ActionSkipped, Time: time.Now()})
		return model.ActionSkipped, nil
	}

	entry := buildEntry(rec)
	id, err := s.catalog.CreateEntry(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("create entry for %s: %w", vin, err)
	}

	// Image failures never fail the import; the entry simply has fewer images.
	primary, gallery := s.importImages(ctx, rec.ID)
	if primary != nil || len(gallery) > 0 {
		if err := s.catalog.AttachImages(ctx, id, primary, gallery); err != nil {
			log.Error(err, "failed to attach images", "vin", vin, "entry", id)
		}
	}

	s.sink.Append(fmt.Sprintf("Created new: %s", vin))
	metrics.ImportsTotal.WithLabelValues("created").Inc()
	s.notify(ctx, &model.ImportEvent{VIN: vin, Action: model.ActionCreated, Title: entry.Title, Time: time.Now()})
	return model.ActionCreated, nil
}
