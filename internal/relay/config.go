package relay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a MediaMTX configuration file. Only the settings this tool
// manages are modelled; unknown keys in an existing file are dropped on
// rewrite, so point WriteToFile at a dedicated include or a file this tool
// owns.
type Config struct {
	API         bool   `yaml:"api"`
	APIAddress  string `yaml:"apiAddress"`
	RTSPAddress string `yaml:"rtspAddress"`

	Paths map[string]PathConfig `yaml:"paths"`
}

// NewConfig returns a configuration with the control API enabled on the
// standard ports.
func NewConfig() *Config {
	return &Config{
		API:         true,
		APIAddress:  ":9997",
		RTSPAddress: ":8554",
		Paths:       make(map[string]PathConfig),
	}
}

// AddPath records a path in the configuration, replacing any existing entry
// with the same name.
func (c *Config) AddPath(name string, path PathConfig) error {
	if name == "" {
		return fmt.Errorf("path name cannot be empty")
	}
	c.Paths[name] = path
	return nil
}

// RemovePath drops a path from the configuration.
func (c *Config) RemovePath(name string) {
	delete(c.Paths, name)
}

// WriteToFile writes the configuration as YAML.
func (c *Config) WriteToFile(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadFromFile reads a YAML configuration. A missing file yields a fresh
// default configuration.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML config: %w", err)
	}

	if config.Paths == nil {
		config.Paths = make(map[string]PathConfig)
	}
	if config.APIAddress == "" {
		config.APIAddress = ":9997"
	}
	if config.RTSPAddress == "" {
		config.RTSPAddress = ":8554"
	}

	return &config, nil
}
