// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Integration tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"listingeditor/internal/cache"
	"listingeditor/internal/database"
	"listingeditor/internal/editor"
	"listingeditor/internal/store"
)

const listingHTML = `<!DOCTYPE html>
<html><head><title>Camera</title></head><body>
<div class="product-info"><h1 class="product-title">Vintage Camera</h1><div class="price">€49.99</div></div>
<div class="product-description"><p>Works.</p></div>
<footer class="legal-notice">Imprint</footer>
</body></html>`

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations and
// seeds the style presets.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "listingeditor")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "listingeditor")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)
	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"editor:*", "preview:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// newStatelessAPI returns an API without database, cache or storage. Editor
// sessions live in memory only.
func newStatelessAPI() *API {
	return NewAPI(nil, nil, nil, nil, editor.NewManager(nil, nil, time.Hour), nil, 0)
}

// testEnv holds the dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Templates *store.TemplateStore
	Versions  *store.VersionStore
	API       *API
}

// newTestEnv creates an API backed by PostgreSQL and Valkey.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rc := testValkeyClient(t)

	templates := store.NewTemplateStore(db)
	versions := store.NewVersionStore(db)
	sessions := editor.NewManager(editor.NewStore(rc), NewAutosaver(versions, DefaultAutosaveKeep), time.Hour)

	api := NewAPI(
		templates,
		versions,
		store.NewStylePresetStore(db),
		cache.NewPreviewCache(rc, time.Minute),
		sessions,
		nil,
		0,
	)
	return &testEnv{DB: db, Templates: templates, Versions: versions, API: api}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanTemplates removes test templates by name. Versions cascade.
func cleanTemplates(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		db.Exec("DELETE FROM listing_templates WHERE name = $1", n)
	}
}
