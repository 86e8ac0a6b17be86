// Package app implements vinsyncctl, the operator CLI for the import daemon.
package app

import (
	"github.com/spf13/cobra"
)

const rootDesc = `vinsyncctl drives a running vinsync import daemon over its control API:
trigger batch runs, import a single VIN, inspect status and logs, and
adjust the import cursor.`

type rootOptions struct {
	server string
	token  string
}

func (o *rootOptions) client() *client {
	return newClient(o.server, o.token)
}

// NewCommand builds the vinsyncctl command tree.
func NewCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "vinsyncctl",
		Short:         "Control a running vinsync import daemon",
		Long:          rootDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.server, "server", "http://127.0.0.1:8080", "Address of the import daemon control API.")
	fs.StringVar(&opts.token, "token", "", "Bearer token for the control API.")

	cmd.AddCommand(
		newStatusCommand(opts),
		newLogsCommand(opts),
		newRunCommand(opts),
		newResetOffsetCommand(opts),
		newPauseCommand(opts),
		newBatchSizeCommand(opts),
		newImportCommand(opts),
		newVehiclesCommand(opts),
	)

	return cmd
}
