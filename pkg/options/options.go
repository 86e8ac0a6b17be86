package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// IOptions defines the contract every option group implements so the
// application framework can bind flags and validate uniformly.
type IOptions interface {
	// Validate checks the options set by the user.
	Validate() []error

	// AddFlags binds the options to a flag set.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// ValidateAddress verifies that addr is a host:port the server can bind to.
func ValidateAddress(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}
