package options

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*CatalogOptions)(nil)

// CatalogOptions configures the storefront catalog REST client.
type CatalogOptions struct {
	// BaseURL is the root of the store API, e.g. https://shop.example.com/wp-json/wc/v3.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// ConsumerKey and ConsumerSecret authenticate catalog writes.
	ConsumerKey    string `json:"consumer-key" mapstructure:"consumer-key"`
	ConsumerSecret string `json:"consumer-secret" mapstructure:"consumer-secret"`

	// Timeout bounds each catalog request.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewCatalogOptions creates a CatalogOptions object with default parameters.
func NewCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		Timeout: 30 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *CatalogOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.BaseURL == "" {
		errs = append(errs, errors.New("catalog base url is required"))
	}

	return errs
}

// AddFlags adds flags for the catalog API to the specified FlagSet.
func (o *CatalogOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "catalog.base-url", o.BaseURL, "Base URL of the storefront catalog API.")
	fs.StringVar(&o.ConsumerKey, "catalog.consumer-key", o.ConsumerKey, "Consumer key for catalog writes.")
	fs.StringVar(&o.ConsumerSecret, "catalog.consumer-secret", o.ConsumerSecret, "Consumer secret for catalog writes.")
	fs.DurationVar(&o.Timeout, "catalog.timeout", o.Timeout, "Timeout for each catalog request.")
}
