// Package config provides configuration management for the rijndael CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/keyderive"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	KDF      KDFConfig       `json:"kdf"`
	Output   OutputConfig    `json:"output"`
}

// DefaultSettings contains default values for cipher operations
type DefaultSettings struct {
	KeySize int    `json:"key_size"` // Default: 32
	Armor   bool   `json:"armor"`    // Default: true
	Mode    string `json:"mode"`     // cbc or ctr
}

// KDFConfig controls password based key derivation
type KDFConfig struct {
	Iterations int `json:"iterations"` // PBKDF2 rounds
}

// OutputConfig contains output related settings
type OutputConfig struct {
	UseColor        bool   `json:"use_color"`
	FilePermissions string `json:"file_permissions"` // octal, e.g. 0600
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a manager for the default config path, writing a
// default config there if none exists yet.
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt is NewConfigManager with an explicit path.
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath: configPath,
	}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			KeySize: rijndael.KeySize256,
			Armor:   true,
			Mode:    "cbc",
		},
		KDF: KDFConfig{
			Iterations: keyderive.DefaultIterations,
		},
		Output: OutputConfig{
			UseColor:        true,
			FilePermissions: "0600",
		},
	}
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// Path returns the file the manager reads and writes.
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// ResetConfig writes the default configuration to path without reading what
// is there, so a broken file can be replaced.
func ResetConfig(path string) error {
	cm := &ConfigManager{configPath: path}
	return cm.Reset()
}

// Reset restores and saves the default configuration.
func (cm *ConfigManager) Reset() error {
	cm.config = DefaultConfig()
	return cm.SaveConfig()
}

// Set assigns a single dotted key such as "defaults.key_size" and saves the
// result. The change is rejected if the resulting config is invalid.
func (cm *ConfigManager) Set(key, value string) error {
	updated := *cm.config

	var err error
	switch strings.ToLower(key) {
	case "defaults.key_size":
		updated.Defaults.KeySize, err = strconv.Atoi(value)
	case "defaults.armor":
		updated.Defaults.Armor, err = strconv.ParseBool(value)
	case "defaults.mode":
		updated.Defaults.Mode = strings.ToLower(value)
	case "kdf.iterations":
		updated.KDF.Iterations, err = strconv.Atoi(value)
	case "output.use_color":
		updated.Output.UseColor, err = strconv.ParseBool(value)
	case "output.file_permissions":
		updated.Output.FilePermissions = value
	default:
		return fmt.Errorf("unknown config key '%s'", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	cm.config = &updated
	return cm.SaveConfig()
}

// Validate checks the configuration for values the CLI cannot use
func (c *Config) Validate() error {
	if !rijndael.ValidKeySize(c.Defaults.KeySize) {
		return fmt.Errorf("defaults.key_size must be 16, 24 or 32 (got %d)", c.Defaults.KeySize)
	}

	switch c.Defaults.Mode {
	case "cbc", "ctr":
	default:
		return fmt.Errorf("defaults.mode must be cbc or ctr (got %q)", c.Defaults.Mode)
	}

	if err := keyderive.CheckIterations(c.KDF.Iterations); err != nil {
		return fmt.Errorf("kdf.%w", err)
	}

	if _, err := c.FileMode(); err != nil {
		return err
	}

	return nil
}

// FileMode parses Output.FilePermissions.
func (c *Config) FileMode() (os.FileMode, error) {
	perm, err := strconv.ParseUint(c.Output.FilePermissions, 8, 32)
	if err != nil || perm > 0777 {
		return 0, fmt.Errorf("output.file_permissions must be an octal mode such as 0600 (got %q)", c.Output.FilePermissions)
	}
	return os.FileMode(perm), nil
}

// GetConfigPath returns the configuration file path
func GetConfigPath() (string, error) {
	if customPath := os.Getenv("RIJNDAEL_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rijndael", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "rijndael", "config.json"), nil
}
