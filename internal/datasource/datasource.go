/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package datasource reads chart data columns from a Postgres database and
// reduces them to scale domains.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"gochart/internal/config"
	applog "gochart/internal/log"
	"gochart/internal/scale"
)

// Column is one result column of a data query. Numeric reports which of the
// two value slices carries the data; both slices have the same length as the
// row count, with the unused one empty.
type Column struct {
	Name    string
	Numeric bool
	Floats  []float32
	Strings []string
}

// Len returns the row count of the column.
func (c *Column) Len() int {
	if c.Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// ResolveDSN fills in the datasource password when the DSN does not carry
// one: explicit password in the DSN wins, otherwise the OS keyring entry for
// service "gochart" is used. A DSN without user info passes through.
func ResolveDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	if u.User == nil {
		return dsn, nil
	}
	if _, has := u.User.Password(); has {
		return dsn, nil
	}
	pw, err := config.DatasourcePassword()
	if err != nil || pw == "" {
		return dsn, nil
	}
	u.User = url.UserPassword(u.User.Username(), pw)
	return u.String(), nil
}

// Columns runs query against the Postgres database at dsn and returns every
// result column typed as numeric or string. NULL cells become NaN in numeric
// columns and the empty string in string columns. A column is numeric when
// its first non-NULL value is.
func Columns(ctx context.Context, dsn, query string) ([]Column, error) {
	resolved, err := ResolveDSN(dsn)
	if err != nil {
		return nil, err
	}
	log := applog.WithOperation(applog.WithComponent("datasource"), "columns")

	db, err := sql.Open("pgx", resolved)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("db close", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	cells := make([][]any, 0, 64)
	for rows.Next() {
		row := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		cells = append(cells, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	out := make([]Column, len(names))
	for i, name := range names {
		col := buildColumn(name, cells, i)
		out[i] = col
	}
	log.Debug("query done", "columns", len(out), "rows", len(cells))
	return out, nil
}

// DomainFor reduces a column to a scale domain array. Numeric columns go
// through InferFloatDomain, string columns through InferStringDomain
// regardless of method.
func DomainFor(method scale.InferDomainMethod, col Column) scale.Array {
	if col.Numeric {
		return scale.InferFloatDomain(method, col.Floats)
	}
	return scale.InferStringDomain(col.Strings)
}

func buildColumn(name string, cells [][]any, idx int) Column {
	numeric := true
	for _, row := range cells {
		v := row[idx]
		if v == nil {
			continue
		}
		_, ok := asFloat(v)
		numeric = ok
		break
	}
	col := Column{Name: name, Numeric: numeric}
	if numeric {
		col.Floats = make([]float32, 0, len(cells))
		for _, row := range cells {
			v := row[idx]
			if v == nil {
				col.Floats = append(col.Floats, float32(math.NaN()))
				continue
			}
			f, ok := asFloat(v)
			if !ok {
				f = float32(math.NaN())
			}
			col.Floats = append(col.Floats, f)
		}
		return col
	}
	col.Strings = make([]string, 0, len(cells))
	for _, row := range cells {
		col.Strings = append(col.Strings, asString(row[idx]))
	}
	return col
}

func asFloat(v any) (float32, bool) {
	switch t := v.(type) {
	case float64:
		return float32(t), true
	case float32:
		return t, true
	case int64:
		return float32(t), true
	case int32:
		return float32(t), true
	case int:
		return float32(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case []byte:
		// pgx delivers NUMERIC as text
		f, err := strconv.ParseFloat(string(t), 32)
		if err != nil {
			return 0, false
		}
		return float32(f), true
	default:
		return 0, false
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
