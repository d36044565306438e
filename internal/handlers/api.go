// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON/HTML API of the listing editor.
// Handlers are grouped by concern (listing transforms, stored templates,
// editor sessions) and receive their dependencies through the API struct.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"listingeditor/internal/cache"
	"listingeditor/internal/editor"
	"listingeditor/internal/generator"
	"listingeditor/internal/models"
	"listingeditor/internal/storage"
	"listingeditor/internal/store"
)

// defaultMaxBody caps request bodies when no limit is configured.
const defaultMaxBody = 5 << 20

// API groups all HTTP handlers and their dependencies.
type API struct {
	templates     *store.TemplateStore
	versions      *store.VersionStore
	presets       *store.StylePresetStore
	previews      *cache.PreviewCache
	sessions      *editor.Manager
	storageClient *storage.Client
	maxBody       int64
}

// NewAPI creates the handler group. previews and storageClient may be nil
// when Valkey caching or S3 publishing are not configured; the stores may
// be nil in tests that only exercise the stateless transforms.
func NewAPI(templates *store.TemplateStore, versions *store.VersionStore, presets *store.StylePresetStore, previews *cache.PreviewCache, sessions *editor.Manager, storageClient *storage.Client, maxBody int64) *API {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &API{
		templates:     templates,
		versions:      versions,
		presets:       presets,
		previews:      previews,
		sessions:      sessions,
		storageClient: storageClient,
		maxBody:       maxBody,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeHTML writes a generated listing document.
func writeHTML(w http.ResponseWriter, report generator.Report, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Generate-Mode", report.Mode)
	if report.PatchFailed {
		w.Header().Set("X-Patch-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}

// decodeJSON reads a size-limited JSON body into v.
func (a *API) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// readBody reads a size-limited raw body.
func (a *API) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

// badBody maps a body read error to 413 or 400.
func badBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body.")
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// requireStore answers 503 when the database-backed stores are missing.
func (a *API) requireStore(w http.ResponseWriter) bool {
	if a.templates == nil || a.versions == nil {
		writeError(w, http.StatusServiceUnavailable, "Template storage is not available.")
		return false
	}
	return true
}

// preset picks the style preset for fresh documents: the one named by
// styleID when it exists, otherwise the default.
func (a *API) preset(styleID string) *models.StylePreset {
	if a.presets == nil {
		return nil
	}
	if id, err := uuid.Parse(styleID); err == nil {
		p, err := a.presets.FindByID(id)
		if err != nil {
			slog.Warn("style preset lookup failed", "id", id, "error", err)
		}
		if p != nil {
			return p
		}
	}
	p, err := a.presets.FindDefault()
	if err != nil {
		slog.Warn("default style preset lookup failed", "error", err)
	}
	return p
}

// render generates the document for data using its style preset.
func (a *API) render(data models.TemplateData) (string, generator.Report) {
	pal := generator.ResolvePalette(data, a.preset(data.TemplateStyleID))
	return generator.GenerateWith(data, pal)
}
