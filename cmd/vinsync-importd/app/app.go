package app

import (
	"fmt"

	"github.com/vinsync-io/vinsync/cmd/vinsync-importd/app/options"
	"github.com/vinsync-io/vinsync/pkg/app"
	"github.com/vinsync-io/vinsync/pkg/log"
)

const (
	commandName = "vinsync-importd"
	commandDesc = `The vinsync import daemon keeps a storefront catalog in sync with a
third-party vehicle inventory. It pages through the upstream inventory on a
schedule, creates a catalog entry per new VIN with mapped attributes and
deduplicated images, and exposes a control API for operators.`
)

// NewApp builds the import daemon application.
func NewApp() *app.App {
	opts := options.NewImporterOptions()
	return app.NewApp(
		commandName,
		"Launch the vehicle inventory import daemon",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)
}

func run(opts *options.ImporterOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)

		ctx := app.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server, err := cfg.NewImportServer()
		if err != nil {
			return fmt.Errorf("failed to create import server: %w", err)
		}

		return server.Run(ctx)
	}
}
