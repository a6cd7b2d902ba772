// Package config loads and saves the tool configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultFixturePath = "/tmp/fake_controller.json"

type Config struct {
	Debug   bool          `yaml:"debug,omitempty"`
	Fixture FixtureConfig `yaml:"fixture,omitempty"`
}

// FixtureConfig gates the injection of a fake controller read from a JSON
// file, used to exercise the pipeline without real hardware.
type FixtureConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// FixturePath returns the configured fixture file location, falling back to
// the default when unset.
func (c *Config) FixturePath() string {
	if c.Fixture.Path != "" {
		return c.Fixture.Path
	}
	return defaultFixturePath
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".config", "controllertools")
	_ = os.MkdirAll(path, 0755)
	return filepath.Join(path, "config.yaml"), nil
}

func Save(conf *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	conf := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		err = Save(conf)
		if err != nil {
			return nil, err
		}
		return conf, nil
	}

	err = yaml.Unmarshal(data, conf)
	if err != nil {
		return nil, err
	}

	return conf, nil
}
