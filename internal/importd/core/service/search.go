package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

// ImportByVIN searches the upstream inventory for one VIN and imports it.
// The search bypasses the cursor and ignores the paused flag.
func (s *Service) ImportByVIN(ctx context.Context, vin string) error {
	vin = strings.TrimSpace(vin)
	if vin == "" {
		return ErrMissingVIN
	}

	s.sink.Append(fmt.Sprintf("Manual VIN import requested: %s", vin))

	rec, err := s.findByVIN(ctx, vin)
	if err != nil {
		return err
	}

	_, err = s.importVehicle(ctx, *rec)
	return err
}

// findByVIN paginates the upstream until the VIN is matched, a short page
// signals the end of data, or the page bound is hit. A page shorter than the
// nominal page size is treated as the last one; that heuristic is part of
// the upstream contract, not something this service can guarantee.
func (s *Service) findByVIN(ctx context.Context, vin string) (*model.VehicleRecord, error) {
	nominal := s.inventory.NominalPageSize()

	for page := 1; page <= s.maxSearchPages; page++ {
		s.sink.Append(fmt.Sprintf("Fetching page %d to find VIN: %s", page, vin))

		records := s.inventory.FetchPage(ctx, page)
		if len(records) == 0 {
			s.sink.Append(fmt.Sprintf("VIN not found: %s (empty page)", vin))
			return nil, ErrVehicleNotFound
		}

		for i := range records {
			if records[i].VIN == vin {
				s.sink.Append(fmt.Sprintf("VIN found on page %d: %s", page, vin))
				return &records[i], nil
			}
		}

		if len(records) < nominal {
			s.sink.Append(fmt.Sprintf("VIN not found: %s (last page)", vin))
			return nil, ErrVehicleNotFound
		}
	}

	s.sink.Append(fmt.Sprintf("VIN search stopped after %d pages: %s", s.maxSearchPages, vin))
	return nil, ErrSearchExhausted
}
