package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the on-disk configuration for rayauthd. Every key is optional;
// command line flags override file values.
type config struct {
	Listen        string `yaml:"listen"`
	StatusListen  string `yaml:"status_listen"`
	MaxLineLength int    `yaml:"max_line_length"`
}

// defaultListen is the well-known port of the remote-display
// authentication service.
const defaultListen = "0.0.0.0:7009"

func defaultConfig() *config {
	return &config{
		Listen: defaultListen,
	}
}

func loadConfigFile(path string) (*config, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(body, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) validate() error {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.MaxLineLength < 0 {
		return fmt.Errorf("max_line_length must not be negative, got %d", c.MaxLineLength)
	}
	return nil
}
