// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the console configuration from defaults, config
// files, the environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PAYMASTER_API_BASE_URL.
const EnvPrefix = "paymaster"

// Config is the complete console configuration.
type Config struct {
	API struct {
		BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	} `mapstructure:"api" yaml:"api"`
	Notifications struct {
		Delay time.Duration `mapstructure:"delay" yaml:"delay"`
	} `mapstructure:"notifications" yaml:"notifications"`
	Language string `mapstructure:"language" yaml:"language"`
	Log      struct {
		Level string `mapstructure:"level" yaml:"level"`
		File  string `mapstructure:"file" yaml:"file,omitempty"`
	} `mapstructure:"log" yaml:"log"`
	Audit struct {
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"audit" yaml:"audit"`
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
}

// Defaults returns the built-in values for every key.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":        "http://localhost:8080/api",
		"api.timeout":         "10s",
		"notifications.delay": "5s",
		"language":            "en",
		"log.level":           "info",
		"log.file":            "",
		"audit.enabled":       false,
		"database.type":       "sqlite",
		"database.dsn":        "./paymaster.db",
	}
}

// GetConfigPath returns the full path of the user or system config file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Paymaster")
		default:
			configDir = "/etc/paymaster"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "paymaster")
	}

	return filepath.Join(configDir, "paymaster.yaml"), nil
}

// LoadConfig resolves T from defaults, then paymaster.yaml in the user
// config dir, the system dir and the working dir (or the explicit file),
// then PAYMASTER_ environment variables, then the flags of cmd.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("paymaster")
	v.SetConfigType("yaml")

	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, a broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := bindFlags(v, cmd); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"base-url":           "api.base_url",
	"timeout":            "api.timeout",
	"notification-delay": "notifications.delay",
	"language":           "language",
	"log-level":          "log.level",
	"log-file":           "log.file",
	"audit":              "audit.enabled",
	"db-type":            "database.type",
	"db-dsn":             "database.dsn",
}

// bindFlags binds every known flag of cmd that the operator actually set.
// Unset flags leave the lower layers alone.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range FlagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfigFile stores c in the user or system config file.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigTo(c, path)
}

// WriteConfigTo stores c as YAML at path, creating the directory.
func WriteConfigTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// The file may carry a database DSN with credentials.
	return os.WriteFile(path, data, 0o600)
}
