// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package config loads and persists the SecureTalk configuration. It layers
// defaults, a YAML config file, environment variables, and CLI flags through
// viper, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the root configuration for the SecureTalk client.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`
	Language  string          `mapstructure:"language" yaml:"language"`
	Debug     bool            `mapstructure:"debug" yaml:"debug"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

// AnalyticsConfig configures the outbound analytics sink. An empty URL means
// events are logged locally instead of published.
type AnalyticsConfig struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Exchange string `mapstructure:"exchange" yaml:"exchange"`
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
}

// Defaults returns the default configuration values keyed for viper.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":      "sqlite",
		"database.dsn":       "./securetalk.db",
		"language":           "en",
		"debug":              false,
		"analytics.enabled":  false,
		"analytics.url":      "",
		"analytics.exchange": "securetalk.events",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "SecureTalk")
		default: // Linux, macOS, etc.
			configDir = "/etc/securetalk"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "securetalk")
	}

	return filepath.Join(configDir, "securetalk.yaml"), nil
}

// LoadConfig builds a configuration of type T from defaults, the config file,
// environment variables (SECURETALK_ prefix), and the command's flags.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("securetalk")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest precedence for file-based
	// configuration.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	// A missing config file is not fatal: the load continues on defaults and
	// the not-found error is handed back so callers can create a default file.
	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("securetalk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// WriteConfigFile persists the configuration as YAML to the user or system
// config location.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
