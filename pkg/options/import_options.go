package options

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*ImportOptions)(nil)

// ImportOptions tunes the import engine and its persisted state.
type ImportOptions struct {
	// Interval between scheduled batch runs.
	Interval time.Duration `json:"interval" mapstructure:"interval"`

	// StateDir holds the settings document and the operator log file.
	StateDir string `json:"state-dir" mapstructure:"state-dir"`

	// MaxSearchPages bounds the manual VIN search pagination.
	MaxSearchPages int `json:"max-search-pages" mapstructure:"max-search-pages"`
}

// NewImportOptions creates an ImportOptions object with default parameters.
func NewImportOptions() *ImportOptions {
	return &ImportOptions{
		Interval:       5 * time.Minute,
		StateDir:       "/var/lib/vinsync",
		MaxSearchPages: 200,
	}
}

// LogPath is the operator log file inside the state dir.
func (o *ImportOptions) LogPath() string {
	return filepath.Join(o.StateDir, "import.log")
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *ImportOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.Interval <= 0 {
		errs = append(errs, errors.New("import interval must be positive"))
	}
	if o.StateDir == "" {
		errs = append(errs, errors.New("state dir is required"))
	}
	if o.MaxSearchPages <= 0 {
		errs = append(errs, errors.New("max search pages must be positive"))
	}

	return errs
}

// AddFlags adds flags for the import engine to the specified FlagSet.
func (o *ImportOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.Interval, "import.interval", o.Interval, "Interval between scheduled batch runs.")
	fs.StringVar(&o.StateDir, "import.state-dir", o.StateDir, "Directory for the settings document and the import log.")
	fs.IntVar(&o.MaxSearchPages, "import.max-search-pages", o.MaxSearchPages, "Upper bound on pages scanned by a manual VIN search.")
}
