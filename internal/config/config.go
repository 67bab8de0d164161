package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when the config file is absent or leaves a field unset.
const (
	DefaultListenAddr     = ":8410"
	DefaultAPIBaseURL     = "http://localhost:8410"
	DefaultRequestTimeout = 10 * time.Second
	DefaultDebounce       = 500 * time.Millisecond
)

// Config represents the application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`

	// LogDir overrides where log files go; empty means ~/.kanri/logs.
	LogDir string `yaml:"log_dir"`
}

// ServerConfig configures the kanrid API server.
type ServerConfig struct {
	ListenAddr   string `yaml:"listen_addr"`
	DatabasePath string `yaml:"database_path"`
}

// ClientConfig configures the TUI client.
type ClientConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	// Timeouts in milliseconds; zero means default.
	RequestTimeoutMS int `yaml:"request_timeout_ms"`
	DebounceMS       int `yaml:"suggest_debounce_ms"`
	ProjectID        int `yaml:"project_id"`
}

// RequestTimeout returns the client request timeout as a duration.
func (c *ClientConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutMS <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Debounce returns the suggestion debounce window as a duration.
func (c *ClientConfig) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return DefaultDebounce
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist. Environment variables
// KANRI_API_URL, KANRI_LISTEN_ADDR and KANRI_DB_PATH override the file.
func Load() (*Config, error) {
	config := defaults()

	configPath, err := getConfigPath()
	if err != nil {
		applyEnv(config)
		return config, nil
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	config.applyDefaults()
	applyEnv(config)
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kanri", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kanri", "config.yaml"), nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Client: ClientConfig{APIBaseURL: DefaultAPIBaseURL},
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Client.APIBaseURL == "" {
		c.Client.APIBaseURL = DefaultAPIBaseURL
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("KANRI_API_URL"); v != "" {
		c.Client.APIBaseURL = v
	}
	if v := os.Getenv("KANRI_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("KANRI_DB_PATH"); v != "" {
		c.Server.DatabasePath = v
	}
	if v := os.Getenv("KANRI_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("KANRI_PROJECT_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil && id > 0 {
			c.Client.ProjectID = id
		}
	}
}
