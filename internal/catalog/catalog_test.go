/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSaveGetRoundTrip(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	doc := []byte(`{"width": 10, "height": 10, "marks": []}`)
	if err := c.Save(ctx, "scatter", doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := c.Get(ctx, "scatter")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(doc) {
		t.Fatalf("stored doc = %s", got)
	}
}

func TestGetMissing(t *testing.T) {
	c := openTest(t)
	_, err := c.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveUpsertsAndListOrders(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	if err := c.Save(ctx, "a", []byte(`{}`)); err != nil {
		t.Fatalf("Save a: %v", err)
	}
	time.Sleep(1100 * time.Millisecond) // RFC3339 second resolution
	if err := c.Save(ctx, "b", []byte(`{}`)); err != nil {
		t.Fatalf("Save b: %v", err)
	}
	if err := c.Save(ctx, "a", []byte(`{"v": 2}`)); err != nil {
		t.Fatalf("re-Save a: %v", err)
	}

	entries, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("list len = %d, want 2", len(entries))
	}
	if entries[0].Name != "a" {
		t.Fatalf("most recent = %q, want the re-saved chart first", entries[0].Name)
	}
	got, _ := c.Get(ctx, "a")
	if string(got) != `{"v": 2}` {
		t.Fatalf("upsert did not replace document: %s", got)
	}
}

func TestSearchMatchesNameAndBody(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	_ = c.Save(ctx, "sales-by-region", []byte(`{"marks": [{"type": "rect"}]}`))
	_ = c.Save(ctx, "temps", []byte(`{"marks": [{"type": "line"}]}`))

	hits, err := c.Search(ctx, "region")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "sales-by-region" {
		t.Fatalf("name search hits = %+v", hits)
	}

	hits, err = c.Search(ctx, "line")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "temps" {
		t.Fatalf("body search hits = %+v", hits)
	}
}

func TestDelete(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	_ = c.Save(ctx, "gone", []byte(`{}`))
	if err := c.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestPreviewRoundTrip(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	_ = c.Save(ctx, "p", []byte(`{}`))

	if err := c.SavePreview(ctx, "p", []byte{0x89, 'P', 'N', 'G'}); err != nil {
		t.Fatalf("SavePreview: %v", err)
	}
	blob, err := c.Preview(ctx, "p")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(blob) != 4 || blob[1] != 'P' {
		t.Fatalf("preview blob = %v", blob)
	}

	if err := c.SavePreview(ctx, "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("preview for missing chart err = %v, want ErrNotFound", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.sqlite")
	ctx := context.Background()

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = c.Save(ctx, "persist", []byte(`{}`))
	_ = c.Close()

	c2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	if _, err := c2.Get(ctx, "persist"); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}
