package main

import (
	"fmt"

	"github.com/spf13/viper"
)

var cfgFile string

// cliConfig mirrors the knobs the teacher's reasoner exposed as flags
// (pretty-printing, a worker-count hint) plus the prefixes this CLI
// declares when none are present in the loaded ontology file.
type cliConfig struct {
	Pretty          bool              `mapstructure:"pretty"`
	Workers         int               `mapstructure:"workers"`
	DefaultPrefixes map[string]string `mapstructure:"default_prefixes"`
}

// loadConfig reads dlreason.yaml (or the file named by --config) via
// viper, falling back to built-in defaults when no dlreason.yaml exists.
// Only a file named by --config that cannot be read is an error; read
// errors for the default dlreason.yaml are ignored.
func loadConfig() (*cliConfig, error) {
	v := viper.New()
	v.SetDefault("pretty", true)
	v.SetDefault("workers", 1)
	v.SetDefault("default_prefixes", map[string]string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("dlreason")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("DLREASON")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("dlreason: reading config: %w", err)
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("dlreason: decoding config: %w", err)
	}
	return &cfg, nil
}
