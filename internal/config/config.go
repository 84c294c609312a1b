/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type ExportConfig struct {
	DPI        int    `yaml:"dpi"`
	Format     string `yaml:"format"` // "png" | "svg" | "pdf"
	Background string `yaml:"background"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type DatasourceConfig struct {
	DSN       string `yaml:"dsn"`
	TimeoutMs int    `yaml:"timeout_ms"`
	// Password is not stored on disk; it lives in the OS keychain.
}

type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	Logging       LoggingConfig    `yaml:"logging"`
	Export        ExportConfig     `yaml:"export"`
	Catalog       CatalogConfig    `yaml:"catalog"`
	Datasource    DatasourceConfig `yaml:"datasource"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Export:        ExportConfig{DPI: 96, Format: "png", Background: "white"},
		Catalog:       CatalogConfig{Path: ""},
		Datasource:    DatasourceConfig{DSN: "", TimeoutMs: 15000},
	}
}

// Env var names used as overrides.
const (
	EnvCatalogPath         = "GOCHART_CATALOG_PATH"
	EnvDatasourceDSN       = "GOCHART_DATASOURCE_DSN"
	EnvDatasourceTimeoutMs = "GOCHART_DATASOURCE_TIMEOUT_MS"
	EnvExportDPI           = "GOCHART_EXPORT_DPI"
	EnvExportFormat        = "GOCHART_EXPORT_FORMAT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GOCHART_LOG_LEVEL"
	EnvLogFormat = "GOCHART_LOG_FORMAT"
	EnvLogSource = "GOCHART_LOG_SOURCE"
	EnvLogFile   = "GOCHART_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService  = "gochart"
	keyringPassword = "datasource_password"
)

// secretStore abstracts keyring, so we can stub in tests.
var secretStore SecretStore = &osKeyring{}

type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements SecretStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (k *osKeyring) Get(service, key string) (string, error) {
	return keyring.Get(service, key)
}
func (k *osKeyring) Set(service, key, value string) error {
	return keyring.Set(service, key, value)
}
func (k *osKeyring) Delete(service, key string) error {
	return keyring.Delete(service, key)
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoChart")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoChart")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "gochart")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads user config file (if present), applies defaults, and merges environment overrides.
// It also loads the datasource password from keyring (not kept inside the struct; returned separately).
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	// password from keyring
	pw, _ := secretStore.Get(keyringService, keyringPassword)
	return cfg, pw, nil
}

// Save writes the user config YAML and persists the password into OS keyring (if non-empty).
func Save(cfg AppConfig, password string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if password != "" {
		if err := secretStore.Set(keyringService, keyringPassword, password); err != nil {
			return err
		}
	}
	return nil
}

// ClearPassword removes the stored datasource password from the OS keyring.
func ClearPassword() error {
	return secretStore.Delete(keyringService, keyringPassword)
}

// DatasourcePassword reads the datasource password from the OS keyring.
// An empty string with nil error means no password is stored.
func DatasourcePassword() (string, error) {
	pw, err := secretStore.Get(keyringService, keyringPassword)
	if err != nil {
		return "", err
	}
	return pw, nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	// export
	if src.Export.DPI > 0 {
		dst.Export.DPI = src.Export.DPI
	}
	if strings.TrimSpace(src.Export.Format) != "" {
		dst.Export.Format = strings.ToLower(strings.TrimSpace(src.Export.Format))
	}
	if strings.TrimSpace(src.Export.Background) != "" {
		dst.Export.Background = strings.TrimSpace(src.Export.Background)
	}
	// catalog
	if strings.TrimSpace(src.Catalog.Path) != "" {
		dst.Catalog.Path = strings.TrimSpace(src.Catalog.Path)
	}
	// datasource
	if strings.TrimSpace(src.Datasource.DSN) != "" {
		dst.Datasource.DSN = strings.TrimSpace(src.Datasource.DSN)
	}
	if src.Datasource.TimeoutMs != 0 {
		dst.Datasource.TimeoutMs = src.Datasource.TimeoutMs
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCatalogPath)); v != "" {
		cfg.Catalog.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatasourceDSN)); v != "" {
		cfg.Datasource.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatasourceTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Datasource.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDPI)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Export.DPI = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportFormat)); v != "" {
		cfg.Export.Format = strings.ToLower(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "catalog.path":
		if os.Getenv(EnvCatalogPath) != "" {
			return EnvCatalogPath, true
		}
	case "datasource.dsn":
		if os.Getenv(EnvDatasourceDSN) != "" {
			return EnvDatasourceDSN, true
		}
	case "datasource.timeout_ms":
		if os.Getenv(EnvDatasourceTimeoutMs) != "" {
			return EnvDatasourceTimeoutMs, true
		}
	case "export.dpi":
		if os.Getenv(EnvExportDPI) != "" {
			return EnvExportDPI, true
		}
	case "export.format":
		if os.Getenv(EnvExportFormat) != "" {
			return EnvExportFormat, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
