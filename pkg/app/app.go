package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vinsync-io/vinsync/pkg/log"
)

// RunFunc is the application's startup callback.
type RunFunc func() error

// Options abstracts the full option set of a command so the framework can
// bind flags, load configuration and validate uniformly.
type Options interface {
	// AddFlags binds every option group to the flag set.
	AddFlags(fs *pflag.FlagSet)

	// Complete fills in defaults that depend on other options.
	Complete() error

	// Validate checks the final option values.
	Validate() error
}

// App is a thin builder around cobra with viper-backed configuration.
type App struct {
	name        string
	shortDesc   string
	description string
	options     Options
	runFunc     RunFunc
	noConfig    bool

	cmd *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithDescription sets the long description shown by --help.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithOptions attaches the command's option set.
func WithOptions(opts Options) Option {
	return func(a *App) { a.options = opts }
}

// WithRunFunc sets the startup callback.
func WithRunFunc(fn RunFunc) Option {
	return func(a *App) { a.runFunc = fn }
}

// WithNoConfig disables the --config flag for commands that take no file.
func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// NewApp creates an application with the given name and options.
func NewApp(name, shortDesc string, opts ...Option) *App {
	a := &App{
		name:      name,
		shortDesc: shortDesc,
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}

	fs := cmd.PersistentFlags()
	if a.options != nil {
		a.options.AddFlags(fs)
	}
	if !a.noConfig {
		addConfigFlag(a.name, fs)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !a.noConfig {
			if err := loadConfig(cmd.Flags(), a.options); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
		}

		if a.options != nil {
			if err := a.options.Complete(); err != nil {
				return err
			}
			if err := a.options.Validate(); err != nil {
				return err
			}
		}

		if a.runFunc != nil {
			return a.runFunc()
		}
		return nil
	}

	a.cmd = cmd
}

// Command exposes the underlying cobra command, mainly for adding subcommands.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the application and exits on failure.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		log.Error(err, "application terminated")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
