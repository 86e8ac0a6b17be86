package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show engine state and import cursor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st struct {
				State     string    `json:"state"`
				Offset    int       `json:"offset"`
				BatchSize int       `json:"batch_size"`
				Paused    bool      `json:"paused"`
				NextRun   time.Time `json:"next_run"`
			}
			if err := opts.client().get("/api/v1/status", &st); err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("STATE:", st.State)
			table.AddRow("OFFSET:", strconv.Itoa(st.Offset))
			table.AddRow("BATCH SIZE:", strconv.Itoa(st.BatchSize))
			table.AddRow("PAUSED:", strconv.FormatBool(st.Paused))
			table.AddRow("NEXT RUN:", st.NextRun.Local().Format(time.RFC1123))
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newLogsCommand(opts *rootOptions) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the operator import log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body struct {
				Lines []struct {
					Timestamp time.Time `json:"timestamp"`
					Message   string    `json:"message"`
				} `json:"lines"`
			}
			path := fmt.Sprintf("/api/v1/logs?lines=%d", lines)
			if err := opts.client().get(path, &body); err != nil {
				return err
			}

			for _, line := range body.Lines {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n",
					line.Timestamp.Local().Format("2006-01-02 15:04:05"), line.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lines, "lines", 20, "Number of log lines to show.")
	return cmd
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Trigger a batch run now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body struct {
				Result string `json:"result"`
			}
			if err := opts.client().post("/api/v1/run-now", nil, &body); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body.Result)
			return nil
		},
	}
}

func newResetOffsetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-offset",
		Short: "Reset the import cursor back to the first page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body struct {
				Result string `json:"result"`
			}
			if err := opts.client().post("/api/v1/reset-offset", nil, &body); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body.Result)
			return nil
		},
	}
}

func newPauseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Toggle the paused flag of the scheduled import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body struct {
				Paused bool `json:"paused"`
			}
			if err := opts.client().post("/api/v1/toggle-pause", nil, &body); err != nil {
				return err
			}
			if body.Paused {
				fmt.Fprintln(cmd.OutOrStdout(), "import paused")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "import resumed")
			}
			return nil
		},
	}
}

func newBatchSizeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch-size <size>",
		Short: "Set the number of vehicles imported per batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid batch size %q", args[0])
			}

			req := struct {
				Size int `json:"size"`
			}{Size: size}
			var body struct {
				Result string `json:"result"`
			}
			if err := opts.client().post("/api/v1/batch-size", &req, &body); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body.Result)
			return nil
		},
	}
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <vin>",
		Short: "Search the upstream inventory for one VIN and import it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := struct {
				VIN string `json:"vin"`
			}{VIN: args[0]}
			var body struct {
				Result string `json:"result"`
				VIN    string `json:"vin"`
			}
			if err := opts.client().post("/api/v1/manual-import", &req, &body); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", body.Result, body.VIN)
			return nil
		},
	}
}

func newVehiclesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles",
		Short: "List every vehicle in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var body struct {
				Vehicles []struct {
					VIN       string `json:"vin"`
					Make      string `json:"make"`
					Model     string `json:"model"`
					Year      string `json:"year"`
					Color     string `json:"color"`
					Permalink string `json:"permalink"`
				} `json:"vehicles"`
			}
			if err := opts.client().get("/api/v1/vehicles", &body); err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("VIN", "MAKE", "MODEL", "YEAR", "COLOR", "LINK")
			for _, v := range body.Vehicles {
				table.AddRow(v.VIN, v.Make, v.Model, v.Year, v.Color, v.Permalink)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
