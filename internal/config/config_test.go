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
	"os"
	"testing"
)

// fakeStore keeps secrets in memory so tests never touch the OS keyring.
type fakeStore struct{ vals map[string]string }

func (f *fakeStore) Get(service, key string) (string, error) {
	return f.vals[service+"/"+key], nil
}
func (f *fakeStore) Set(service, key, value string) error {
	f.vals[service+"/"+key] = value
	return nil
}
func (f *fakeStore) Delete(service, key string) error {
	delete(f.vals, service+"/"+key)
	return nil
}

func withFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	old := secretStore
	fs := &fakeStore{vals: map[string]string{}}
	secretStore = fs
	t.Cleanup(func() { secretStore = old })
	return fs
}

func TestEnvOverridesDatasourceDSN(t *testing.T) {
	withFakeStore(t)
	old := os.Getenv(EnvDatasourceDSN)
	_ = os.Setenv(EnvDatasourceDSN, "postgres://example.test:5432/charts")
	t.Cleanup(func() { _ = os.Setenv(EnvDatasourceDSN, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Datasource.DSN, "postgres://example.test:5432/charts"; got != want {
		t.Fatalf("Datasource.DSN = %q, want %q", got, want)
	}
}

func TestEnvOverridesExportDPI(t *testing.T) {
	withFakeStore(t)
	old := os.Getenv(EnvExportDPI)
	_ = os.Setenv(EnvExportDPI, "300")
	t.Cleanup(func() { _ = os.Setenv(EnvExportDPI, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Export.DPI != 300 {
		t.Fatalf("Export.DPI = %d, want 300 from env override", cfg.Export.DPI)
	}
}

func TestMergeIncludesExport(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Export.DPI = 144
	src.Export.Format = "PDF"
	mergeInto(&dst, &src)
	if dst.Export.DPI != 144 || dst.Export.Format != "pdf" {
		t.Fatalf("export fields not merged correctly: %#v", dst.Export)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/gochart.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/gochart.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	withFakeStore(t)
	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "/tmp/gochart-test.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/gochart-test.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestPasswordRoundTripThroughStore(t *testing.T) {
	fs := withFakeStore(t)
	if err := secretStore.Set(keyringService, keyringPassword, "s3cret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, pw, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if pw != "s3cret" {
		t.Fatalf("password = %q, want keyring value", pw)
	}
	if err := ClearPassword(); err != nil {
		t.Fatalf("ClearPassword: %v", err)
	}
	if len(fs.vals) != 0 {
		t.Fatalf("password not cleared: %v", fs.vals)
	}
}

func TestEnvOverrideForReportsNames(t *testing.T) {
	old := os.Getenv(EnvCatalogPath)
	_ = os.Setenv(EnvCatalogPath, "/tmp/catalog.db")
	t.Cleanup(func() { _ = os.Setenv(EnvCatalogPath, old) })
	name, ok := EnvOverrideFor("catalog.path")
	if !ok || name != EnvCatalogPath {
		t.Fatalf("EnvOverrideFor = %q/%v, want %q", name, ok, EnvCatalogPath)
	}
	if _, ok := EnvOverrideFor("no.such.key"); ok {
		t.Fatalf("unknown key should not report an override")
	}
}
