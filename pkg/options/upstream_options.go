package options

import (
	"errors"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*UpstreamOptions)(nil)

// UpstreamOptions configures the client for the third-party inventory API.
type UpstreamOptions struct {
	// BaseURL is the root of the inventory API, e.g.
	// https://api.pglsystem.com/api/customer/api_integration.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Token is the opaque bearer credential attached to every request.
	Token string `json:"token" mapstructure:"token"`

	// Timeout bounds each upstream request, including image downloads.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewUpstreamOptions creates an UpstreamOptions object with default parameters.
func NewUpstreamOptions() *UpstreamOptions {
	return &UpstreamOptions{
		BaseURL: "https://api.pglsystem.com/api/customer/api_integration",
		Timeout: 30 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *UpstreamOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.BaseURL == "" {
		errs = append(errs, errors.New("upstream base url is required"))
	} else if _, err := url.Parse(o.BaseURL); err != nil {
		errs = append(errs, err)
	}

	if o.Token == "" {
		errs = append(errs, errors.New("upstream token is required"))
	}

	return errs
}

// AddFlags adds flags for the upstream inventory API to the specified FlagSet.
func (o *UpstreamOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "upstream.base-url", o.BaseURL, "Base URL of the inventory API.")
	fs.StringVar(&o.Token, "upstream.token", o.Token, "Bearer token for the inventory API.")
	fs.DurationVar(&o.Timeout, "upstream.timeout", o.Timeout, "Timeout for each upstream request.")
}
