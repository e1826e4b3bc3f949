// Package config loads process-wide configuration: the API credential and
// the per-task model selection. The credential is read once at startup and
// treated as read-only for the lifetime of the process.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string
	Models       Models
	ConfigDir    string
}

// FileConfig represents the structure of ~/.ecolens/config.yaml
type FileConfig struct {
	APIKeys APIKeysConfig `yaml:"api_keys"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	Gemini string `yaml:"gemini"`
}

// Load reads configuration from config files and environment variables.
// Environment variables take precedence over file configuration.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	fileConfig := loadFileConfig(filepath.Join(configDir, "config.yaml"))

	cfg := &Config{
		GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", fileConfig.APIKeys.Gemini),
		ConfigDir:    configDir,
	}

	modelsPath := filepath.Join(configDir, "models.yaml")
	if _, err := os.Stat(modelsPath); err == nil {
		models, err := LoadModels(modelsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load models config: %w", err)
		}
		cfg.Models = *models
	} else {
		cfg.Models = DefaultModels()
	}

	return cfg, nil
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, cfg) // Ignore parse errors, use defaults
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".ecolens")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
