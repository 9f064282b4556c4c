// Package config handles loading and saving user configuration for emojify.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/f3rmion/emojify/internal/logging"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Translate  TranslateConfig  `yaml:"translate"`
	Logging    logging.Config   `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
}

// DictionaryConfig lists where to look for the dictionary.
type DictionaryConfig struct {
	Paths []string `yaml:"paths"` // tried in order; empty uses the built-in dictionary
}

// TranslateConfig holds translation defaults.
type TranslateConfig struct {
	Direction string `yaml:"direction"` // "emoji" or "text"
	Policy    string `yaml:"policy"`    // "sequential" or "single-pass"
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"` // reload the dictionary when its file changes
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Paths: []string{"emoji_data.json", "data/emoji_data.json"},
		},
		Translate: TranslateConfig{
			Direction: "emoji",
			Policy:    "sequential",
		},
		Logging: logging.Config{
			Level:    "warn",
			MaxSize:  10,
			MaxFiles: 5,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Load reads a configuration file. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadDir loads config.yaml from dir, returning defaults when it does not exist.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "emojify"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
