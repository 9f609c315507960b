package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the hosted ORDS endpoint the client talks to unless
// overridden by config or PULSE_API_BASE_URL.
const DefaultBaseURL = "https://oracleapex.com/ords/oan_trial"

// Config holds user preferences
type Config struct {
	APIBaseURL    string `yaml:"api_base_url" json:"api_base_url"`       // ORDS endpoint
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"`   // Require confirmation for destructive actions

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".pulse", "logs", "pulse.log")
	}

	return &Config{
		APIBaseURL:    getEnv("PULSE_API_BASE_URL", DefaultBaseURL),
		ConfirmDelete: true,
		LogLevel:      getEnv("PULSE_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("PULSE_LOG_FILE", logPath),
		LogConsole:    getEnv("PULSE_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pulse", "config.yaml"), nil
}

// Load loads config from ~/.pulse/config.yaml, falling back to
// defaults when no file exists. Environment variables win over the
// file for the base URL.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if env := os.Getenv("PULSE_API_BASE_URL"); env != "" {
		cfg.APIBaseURL = env
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultBaseURL
	}

	return cfg, nil
}

// Save saves config to ~/.pulse/config.yaml
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
