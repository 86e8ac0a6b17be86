package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/vinsync-io/vinsync/internal/importd"
	"github.com/vinsync-io/vinsync/pkg/app"
	"github.com/vinsync-io/vinsync/pkg/log"
	"github.com/vinsync-io/vinsync/pkg/options"
)

// ImporterOptions aggregates every option group of the import daemon.
type ImporterOptions struct {
	HttpOptions     *options.HttpOptions     `json:"http" mapstructure:"http"`
	UpstreamOptions *options.UpstreamOptions `json:"upstream" mapstructure:"upstream"`
	CatalogOptions  *options.CatalogOptions  `json:"catalog" mapstructure:"catalog"`
	S3Options       *options.S3Options       `json:"s3" mapstructure:"s3"`
	MqttOptions     *options.MqttOptions     `json:"mqtt" mapstructure:"mqtt"`
	ImportOptions   *options.ImportOptions   `json:"import" mapstructure:"import"`
	Log             *log.Options             `json:"log" mapstructure:"log"`
}

var _ app.Options = (*ImporterOptions)(nil)

// NewImporterOptions creates the option set with defaults.
func NewImporterOptions() *ImporterOptions {
	return &ImporterOptions{
		HttpOptions:     options.NewHttpOptions(),
		UpstreamOptions: options.NewUpstreamOptions(),
		CatalogOptions:  options.NewCatalogOptions(),
		S3Options:       options.NewS3Options(),
		MqttOptions:     options.NewMqttOptions(),
		ImportOptions:   options.NewImportOptions(),
		Log:             log.NewOptions(),
	}
}

// AddFlags binds every option group to the flag set.
func (o *ImporterOptions) AddFlags(fs *pflag.FlagSet) {
	o.HttpOptions.AddFlags(fs)
	o.UpstreamOptions.AddFlags(fs)
	o.CatalogOptions.AddFlags(fs)
	o.S3Options.AddFlags(fs)
	o.MqttOptions.AddFlags(fs)
	o.ImportOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Complete fills in defaults that depend on other options.
func (o *ImporterOptions) Complete() error {
	return nil
}

// Validate checks the final option values.
func (o *ImporterOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.UpstreamOptions.Validate()...)
	errs = append(errs, o.CatalogOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.ImportOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config assembles the daemon configuration from the options.
func (o *ImporterOptions) Config() (*importd.Config, error) {
	return &importd.Config{
		HttpOptions:     o.HttpOptions,
		UpstreamOptions: o.UpstreamOptions,
		CatalogOptions:  o.CatalogOptions,
		S3Options:       o.S3Options,
		MqttOptions:     o.MqttOptions,
		ImportOptions:   o.ImportOptions,
	}, nil
}
