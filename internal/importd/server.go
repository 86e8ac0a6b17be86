// Package importd assembles the vehicle import daemon: the reconciliation
// engine, its adapters and the ingress servers.
package importd

import (
	"context"

	"github.com/vinsync-io/vinsync/internal/importd/media"
	"github.com/vinsync-io/vinsync/internal/importd/server"
	"github.com/vinsync-io/vinsync/internal/importd/settings"
	"github.com/vinsync-io/vinsync/pkg/log"
	"github.com/vinsync-io/vinsync/pkg/mqtt"
)

// ImportServer is the main application struct for the import daemon.
type ImportServer struct {
	serverManager *server.Manager
	mediaStore    *media.Store
	mqttClient    mqtt.Client
}

// Run starts the application components and blocks until ctx is done or a
// component fails.
func (a *ImportServer) Run(ctx context.Context) error {
	log.Info("Starting Import Daemon...")

	if err := a.mediaStore.EnsureBucket(ctx); err != nil {
		return err
	}

	if a.mqttClient != nil {
		if err := a.mqttClient.Start(ctx); err != nil {
			return err
		}
		defer a.mqttClient.Disconnect(context.Background())
	}

	return a.serverManager.Start(ctx)
}

// watcherServer adapts the settings file watcher to the server manager.
type watcherServer struct {
	store *settings.FileStore
}

func (w watcherServer) Start(ctx context.Context) error {
	return w.store.Watch(ctx)
}
