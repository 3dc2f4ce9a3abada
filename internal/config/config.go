package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	PortalName             string `yaml:"portalName" validate:"required"`
	SeedDataPath           string `yaml:"seedDataPath" validate:"required"`
	TokenSigningKey        string `yaml:"tokenSigningKey" validate:"required,min=16"`
	SessionTTLMinutes      int    `yaml:"sessionTTLMinutes" validate:"required,min=1"`
	NotificationTTLMinutes int    `yaml:"notificationTTLMinutes" validate:"required,min=1"`
	DemoPassword           string `yaml:"demoPassword" validate:"required"`
}

// SessionTTL returns the session token lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// NotificationTTL returns how long notifications live before expiring.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLMinutes) * time.Minute
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from portal_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for portal_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "portal_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
