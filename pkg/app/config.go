package app

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

const envPrefix = "VINSYNC"

func addConfigFlag(name string, fs *pflag.FlagSet) {
	fs.String(configFlagName, "", fmt.Sprintf("Path to the %s configuration file.", name))
}

// loadConfig merges, in ascending precedence: config file, VINSYNC_* environment
// variables, and explicitly set command-line flags. The merged values are
// written back into the options struct through viper's mapstructure decoding.
func loadConfig(fs *pflag.FlagSet, opts Options) error {
	v := viper.New()

	if cfgFile, _ := fs.GetString(configFlagName); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if opts == nil {
		return nil
	}
	return v.Unmarshal(opts)
}
