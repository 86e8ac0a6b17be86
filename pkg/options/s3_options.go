package options

import (
	"errors"

	"github.com/spf13/pflag"
)

var _ IOptions = (*S3Options)(nil)

// S3Options configures the S3-compatible media store.
type S3Options struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint"`
	AccessKeyID     string `json:"access-key-id" mapstructure:"access-key-id"`
	SecretAccessKey string `json:"secret-access-key" mapstructure:"secret-access-key"`
	UseSSL          bool   `json:"use-ssl" mapstructure:"use-ssl"`
	BucketName      string `json:"bucket-name" mapstructure:"bucket-name"`
	Region          string `json:"region" mapstructure:"region"`

	// PublicBaseURL is the externally reachable root under which stored
	// objects are served. When empty it is derived from Endpoint and BucketName.
	PublicBaseURL string `json:"public-base-url" mapstructure:"public-base-url"`
}

// NewS3Options creates an S3Options object with default parameters.
func NewS3Options() *S3Options {
	return &S3Options{
		Endpoint:   "localhost:9000",
		UseSSL:     false,
		BucketName: "vehicle-media",
		Region:     "us-east-1",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *S3Options) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.Endpoint == "" {
		errs = append(errs, errors.New("s3 endpoint is required"))
	}
	if o.BucketName == "" {
		errs = append(errs, errors.New("s3 bucket name is required"))
	}

	return errs
}

// AddFlags adds flags related to the media store to the specified FlagSet.
func (o *S3Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Endpoint, "s3.endpoint", o.Endpoint, "S3 service endpoint (e.g. s3.amazonaws.com or minio.local)")
	fs.StringVar(&o.AccessKeyID, "s3.access-key-id", o.AccessKeyID, "S3 access key ID")
	fs.StringVar(&o.SecretAccessKey, "s3.secret-access-key", o.SecretAccessKey, "S3 secret access key")
	fs.BoolVar(&o.UseSSL, "s3.use-ssl", o.UseSSL, "Enable SSL for S3 connection")
	fs.StringVar(&o.BucketName, "s3.bucket-name", o.BucketName, "S3 bucket name for vehicle media")
	fs.StringVar(&o.Region, "s3.region", o.Region, "S3 region")
	fs.StringVar(&o.PublicBaseURL, "s3.public-base-url", o.PublicBaseURL, "Public root URL under which stored objects are served")
}
