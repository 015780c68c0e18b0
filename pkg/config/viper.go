package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables.
// configPath is the directory containing config files.
// configName is the name of the config file (without extension).
// A missing config file is not an error: defaults and env vars apply.
func Load(configPath, configName string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return v, nil
}

// LoadWithFlags is Load plus command-line flags. bindings maps a config key
// to the flag name that overrides it; flags win over file and env only when
// they were set explicitly.
func LoadWithFlags(configPath, configName string, fs *pflag.FlagSet, bindings map[string]string) (*viper.Viper, error) {
	v, err := Load(configPath, configName)
	if err != nil {
		return nil, err
	}

	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("unknown flag %q for key %q", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}

	return v, nil
}
