// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the qrify.yaml configuration. Values are layered
// defaults < config file < QRIFY_* environment < command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/qrify/qrify/buildvars"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when neither the build nor the user configured a backend.
const DefaultAPIURL = "http://localhost:8000/api"

type Config struct {
	API         APIConfig     `mapstructure:"api" yaml:"api"`
	Storage     StorageConfig `mapstructure:"storage" yaml:"storage"`
	Language    string        `mapstructure:"language" yaml:"language"`
	Theme       string        `mapstructure:"theme" yaml:"theme"`
	DownloadDir string        `mapstructure:"download_dir" yaml:"download_dir"`
	Demo        bool          `mapstructure:"demo" yaml:"demo"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// StorageConfig selects the local key/value store. Type is one of
// sqlite, postgres, mysql or memory.
type StorageConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// Defaults returns the default values keyed by their viper path.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url": buildvars.APIURLOrDefault(DefaultAPIURL),
		"storage.type": "sqlite",
		"storage.dsn":  DefaultStorageDSN(),
		"language":     "en",
		"theme":        "dark",
		"download_dir": ".",
		"demo":         false,
	}
}

// DefaultStorageDSN places the sqlite file next to the user config.
func DefaultStorageDSN() string {
	if path, err := GetConfigPath(false); err == nil {
		return filepath.Join(filepath.Dir(path), "qrify.db")
	}
	return "./qrify.db"
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "QRify")
		default:
			configDir = "/etc/qrify"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "qrify")
	}

	return filepath.Join(configDir, "qrify.yaml"), nil
}

// LoadConfig resolves T from defaults, the first qrify.yaml found (or the
// explicit file), QRIFY_* environment variables and the flags of cmd.
// When no usable config file exists the fully resolved value is returned
// together with a viper.ConfigFileNotFoundError so callers can write one.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("qrify")
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return c, err
		}
		notFound = err
	} else if used := v.ConfigFileUsed(); isEmptyFile(used) {
		// an empty file is treated like a missing one so defaults get written
		notFound = viper.ConfigFileNotFoundError{}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("qrify")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

func isEmptyFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() == 0
}

// WriteConfigFile persists c as yaml to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo persists c as yaml to path.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0o600)
}
