/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package catalog persists chart documents in an embedded SQLite database:
// the raw JSON per chart, rendered preview blobs, and a LIKE-based search
// ranked by recency.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "gochart/internal/log"
	"gochart/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DefaultFileName is used when the configured catalog path is a
	// directory or empty.
	DefaultFileName = "catalog.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// changes and add a migration step.
	schemaVersion = 2
)

// ErrNotFound reports a chart name with no catalog row.
var ErrNotFound = errors.New("chart not found")

// Entry is one catalog listing row.
type Entry struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Catalog wraps the open database.
type Catalog struct {
	db   *sql.DB
	path string
}

// ResolvePath maps the configured path onto a database file: empty means
// the user config directory, a directory gets the default file name.
func ResolvePath(configured string) string {
	if strings.TrimSpace(configured) == "" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gochart", DefaultFileName)
	}
	if fi, err := os.Stat(configured); err == nil && fi.IsDir() {
		return filepath.Join(configured, DefaultFileName)
	}
	return configured
}

// Open ensures the catalog database exists at path, enables WAL mode, and
// brings the schema up to date.
func Open(path string) (*Catalog, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "open").With(
		slog.String("path", path),
	)
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		l.Error("create catalog dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("catalog ready")
	return &Catalog{db: db, path: path}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error { return c.db.Close() }

// Path returns the database file location.
func (c *Catalog) Path() string { return c.path }

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS charts (
			chart_id   INTEGER PRIMARY KEY,
			name       TEXT    NOT NULL UNIQUE,
			json       TEXT    NOT NULL,
			created_at TEXT    NOT NULL,
			updated_at TEXT    NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_charts_name ON charts(name);`,

		// Rendered preview cache, one blob per chart.
		`CREATE TABLE IF NOT EXISTS previews (
			chart_id   INTEGER PRIMARY KEY,
			png_blob   BLOB    NOT NULL,
			updated_at TEXT    NOT NULL,
			FOREIGN KEY(chart_id) REFERENCES charts(chart_id) ON DELETE CASCADE
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// no downgrades
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_charts_updated ON charts(updated_at);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
		default:
			// unknown future step
		}
		cur = next
	}
	return nil
}

// Save upserts a chart document under name, refreshing updated_at.
func (c *Catalog) Save(ctx context.Context, name string, doc []byte) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("chart name is required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO charts(name, json, created_at, updated_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET json=excluded.json, updated_at=excluded.updated_at`,
		name, string(doc), now, now)
	if err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// Get returns the stored JSON document for name.
func (c *Catalog) Get(ctx context.Context, name string) ([]byte, error) {
	var doc string
	err := c.db.QueryRowContext(ctx, `SELECT json FROM charts WHERE name=?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get chart: %w", err)
	}
	return []byte(doc), nil
}

// Delete removes a chart and its preview.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM charts WHERE name=?`, name)
	if err != nil {
		return fmt.Errorf("delete chart: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// List returns all charts, most recently updated first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, created_at, updated_at FROM charts ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search matches the term against chart names and document text with LIKE,
// most recently updated first.
func (c *Catalog) Search(ctx context.Context, term string) ([]Entry, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, created_at, updated_at FROM charts
		WHERE name LIKE ? OR json LIKE ?
		ORDER BY updated_at DESC, name`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search charts: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var created, updated string
		if err := rows.Scan(&e.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan chart row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart rows: %w", err)
	}
	return out, nil
}

// SavePreview stores a rendered preview blob for an existing chart.
func (c *Catalog) SavePreview(ctx context.Context, name string, blob []byte) error {
	id, err := c.chartID(ctx, name)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO previews(chart_id, png_blob, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(chart_id) DO UPDATE SET png_blob=excluded.png_blob, updated_at=excluded.updated_at`,
		id, blob, now)
	if err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

// Preview returns the stored preview blob for name.
func (c *Catalog) Preview(ctx context.Context, name string) ([]byte, error) {
	id, err := c.chartID(ctx, name)
	if err != nil {
		return nil, err
	}
	var blob []byte
	err = c.db.QueryRowContext(ctx, `SELECT png_blob FROM previews WHERE chart_id=?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: preview for %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get preview: %w", err)
	}
	return blob, nil
}

func (c *Catalog) chartID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, `SELECT chart_id FROM charts WHERE name=?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup chart: %w", err)
	}
	return id, nil
}
