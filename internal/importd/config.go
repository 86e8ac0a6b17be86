package importd

import (
	"fmt"
	"os"

	"github.com/vinsync-io/vinsync/internal/importd/catalog"
	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/service"
	"github.com/vinsync-io/vinsync/internal/importd/inventory"
	"github.com/vinsync-io/vinsync/internal/importd/logsink"
	"github.com/vinsync-io/vinsync/internal/importd/media"
	"github.com/vinsync-io/vinsync/internal/importd/notifier"
	"github.com/vinsync-io/vinsync/internal/importd/scheduler"
	"github.com/vinsync-io/vinsync/internal/importd/server"
	serverhttp "github.com/vinsync-io/vinsync/internal/importd/server/http"
	"github.com/vinsync-io/vinsync/internal/importd/settings"
	"github.com/vinsync-io/vinsync/pkg/log"
	"github.com/vinsync-io/vinsync/pkg/mqtt"
	"github.com/vinsync-io/vinsync/pkg/options"
)

type Config struct {
	HttpOptions     *options.HttpOptions
	UpstreamOptions *options.UpstreamOptions
	CatalogOptions  *options.CatalogOptions
	S3Options       *options.S3Options
	MqttOptions     *options.MqttOptions
	ImportOptions   *options.ImportOptions
}

// NewImportServer wires the adapters into the engine and the engine into
// the ingress servers.
func (cfg *Config) NewImportServer() (*ImportServer, error) {
	// Secondary adapters: upstream, catalog, media, settings, log sink.
	inventoryClient := inventory.NewClient(cfg.UpstreamOptions)
	catalogClient := catalog.NewClient(cfg.CatalogOptions)

	mediaStore, err := media.NewStore(cfg.S3Options)
	if err != nil {
		return nil, fmt.Errorf("failed to init media store: %w", err)
	}

	settingsStore, err := settings.NewFileStore(cfg.ImportOptions.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init settings store: %w", err)
	}

	sink := logsink.NewFileSink(cfg.ImportOptions.LogPath())

	// Optional notifier. No broker means no events, not an error.
	var eventNotifier core.EventNotifier
	var mqttClient mqtt.Client
	if cfg.MqttOptions.Enabled() {
		mqttClient, err = initializeMQTTClient(cfg.MqttOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to init notifier: %w", err)
		}
		eventNotifier = notifier.NewMQTTNotifier(mqttClient, cfg.MqttOptions.TopicRoot)
	}

	// Core domain service.
	svc := service.New(
		inventoryClient,
		catalogClient,
		mediaStore,
		settingsStore,
		sink,
		eventNotifier,
		cfg.ImportOptions.MaxSearchPages,
	)

	// Primary adapters: control API and the schedule loop.
	sched := scheduler.New(svc, cfg.ImportOptions.Interval)
	httpSrv := serverhttp.NewServer(cfg.HttpOptions, svc, sched)

	manager := server.NewManager(httpSrv, sched, watcherServer{settingsStore})

	return &ImportServer{
		serverManager: manager,
		mediaStore:    mediaStore,
		mqttClient:    mqttClient,
	}, nil
}

func initializeMQTTClient(opts *options.MqttOptions) (mqtt.Client, error) {
	clientCfg := opts.ToClientConfig()

	if clientCfg.ClientID == "" {
		hostname, _ := os.Hostname()
		clientCfg.ClientID = fmt.Sprintf("vinsync-importd-%s", hostname)
	}

	client, err := mqtt.NewClient(clientCfg)
	if err != nil {
		log.Error(err, "failed to new mqtt client")
		return nil, err
	}

	return client, nil
}
