package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds the target database parameters from tabload.yaml.
// The password is deliberately absent: it comes from the TABLOAD_PASSWORD
// environment variable (or a .env file), never from the config file.
type ConnectionConfig struct {
	Dialect  string `yaml:"dialect"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Database string `yaml:"database,omitempty"`
	Path     string `yaml:"path,omitempty"`    // sqlite database file
	Service  string `yaml:"service,omitempty"` // oracle service name
	SSLMode  string `yaml:"sslmode,omitempty"`
}

// LoadConfig holds project-level defaults for load behavior.
// NormalizeNames is a pointer so an absent key is distinguishable from an
// explicit false; normalization defaults on when the key is missing.
type LoadConfig struct {
	BatchSize       int   `yaml:"batch_size,omitempty"`
	NormalizeNames  *bool `yaml:"normalize_names,omitempty"`
	CreateIfMissing bool  `yaml:"create_if_missing,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadConfig       `yaml:"load"`
}

const ConfigFileName = "tabload.yaml"

// Load reads tabload.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
