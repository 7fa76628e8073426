// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/quietwire/securetalk/internal/config"
)

func resetViper() {
	viper.Reset()
}

func TestLoadConfig_Defaults(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Unsetenv("XDG_CONFIG_HOME")

	resetViper()
	defer resetViper()

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	// Without any config file on disk, LoadConfig returns the not-found error
	// alongside a config populated from defaults.
	if err == nil {
		t.Fatalf("expected ConfigFileNotFoundError, got nil")
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		t.Fatalf("expected ConfigFileNotFoundError, got: %T %v", err, err)
	}
	if c.Database.Type != "sqlite" {
		t.Fatalf("expected default database type 'sqlite', got %q", c.Database.Type)
	}
	if c.Language != "en" {
		t.Fatalf("expected default language 'en', got %q", c.Language)
	}
	if c.Analytics.Exchange != "securetalk.events" {
		t.Fatalf("expected default exchange, got %q", c.Analytics.Exchange)
	}
	if c.Analytics.Enabled {
		t.Fatalf("analytics should be disabled by default")
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Unsetenv("XDG_CONFIG_HOME")

	resetViper()
	defer resetViper()

	path := filepath.Join(tmp, "custom.yaml")
	body := "language: de\ndatabase:\n  type: postgres\n  dsn: postgres://localhost/securetalk\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Language != "de" {
		t.Fatalf("expected language 'de', got %q", c.Language)
	}
	if c.Database.Type != "postgres" {
		t.Fatalf("expected database type 'postgres', got %q", c.Database.Type)
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	tmp := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Unsetenv("XDG_CONFIG_HOME")

	resetViper()
	defer resetViper()

	c := cfg.Config{}
	c.Database.Type = "sqlite"
	c.Database.DSN = "./securetalk.db"
	c.Language = "en"

	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}
