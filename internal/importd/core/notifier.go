package core

import (
	"context"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

// EventNotifier fans out import events to interested systems.
// Delivery is best effort; the engine logs and continues on failure.
type EventNotifier interface {
	Notify(ctx context.Context, event *model.ImportEvent) error
}

// NopNotifier discards every event. Used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, event *model.ImportEvent) error { return nil }
