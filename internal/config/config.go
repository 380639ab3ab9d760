// Package config handles loading and saving user configuration for savour.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.yaml"

// Defaults.
const (
	DefaultEndpoint = "http://localhost:6001"
	DefaultPort     = "6001"
	DefaultModel    = "gemini-1.5-flash-002"
)

// Config holds all user configuration.
type Config struct {
	Endpoint string       `yaml:"endpoint"`            // Base URL of the analysis service
	StartDir string       `yaml:"start_dir,omitempty"` // Directory the photo picker opens in
	LogFile  string       `yaml:"log_file,omitempty"`  // Where the TUI writes its log
	Verbose  bool         `yaml:"verbose"`
	Server   ServerConfig `yaml:"server"`
}

// ServerConfig holds settings for the bundled analysis service.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	Model          string   `yaml:"model"`           // Gemini model name
	AllowedOrigins []string `yaml:"allowed_origins"` // Extra CORS origins
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Server: ServerConfig{
			Port:  DefaultPort,
			Model: DefaultModel,
		},
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// default values.
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

// LoadDir loads config.yaml from dir.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// fileHeader is written above the YAML by Save.
const fileHeader = `# SavourSAGE configuration
#
# endpoint:   base URL of the analysis service; photos are posted to
#             <endpoint>/analyze_food
# start_dir:  folder the photo picker opens in (~/ is expanded)
# log_file:   log file for the interactive UI (default savour.log here)
# server:     settings for 'savour serve'; the Gemini key is read from
#             GEMINI_API_KEY, allowed_origins adds CORS origins
#
# Every key can also be set with an environment variable, e.g.
# SAVOUR_ENDPOINT or SAVOUR_SERVER_PORT.

`

// Save writes the configuration to a YAML file.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), out...), 0644); err != nil {
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
	return filepath.Join(home, ".config", "savour"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// LogPath returns the log file for cfg, defaulting to savour.log in dir.
func (c *Config) LogPath(dir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(dir, "savour.log")
}

// PickerDir returns the directory the photo picker starts in. A leading ~
// in start_dir is the home directory.
func (c *Config) PickerDir() string {
	if dir := expandHome(c.StartDir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/"
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
