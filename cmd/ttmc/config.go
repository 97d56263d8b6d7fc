package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ttmc configuration file
// (~/.config/ttmc/config.yaml). All numeric fields are pointers so we
// can distinguish "not set" from zero values.
type Config struct {
	Scheme    string `yaml:"scheme"`
	NThreads  *int64 `yaml:"nthreads"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Address   string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ttmc", "config.yaml")
}

// applyBenchConfig applies config file defaults to bench/flops command
// variables when the corresponding CLI flag was not explicitly set.
func applyBenchConfig(c *cli.Command, cfg Config) {
	if cfg.Scheme != "" && !c.IsSet("scheme") {
		scheme = cfg.Scheme
	}
	if cfg.NThreads != nil && !c.IsSet("threads") {
		nthreads = *cfg.NThreads
	}
}

// applyServeConfig applies config file defaults to serve command
// variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.Address != "" && !c.IsSet("addr") {
		*addr = cfg.Address
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
