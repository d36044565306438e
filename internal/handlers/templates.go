// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"listingeditor/internal/models"
	"listingeditor/internal/parser"
	"listingeditor/internal/slug"
	"listingeditor/internal/store"
)

// TemplatesList returns all stored templates.
func (a *API) TemplatesList(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}
	templates, err := a.templates.List()
	if err != nil {
		slog.Error("list templates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load templates.")
		return
	}
	if templates == nil {
		templates = []models.ListingTemplate{}
	}
	writeJSON(w, http.StatusOK, templates)
}

// TemplateCreate stores a new template from {name, html}.
func (a *API) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}
	var req struct {
		Name string `json:"name"`
		HTML string `json:"html"`
	}
	if err := a.decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}
	if msg := validateTemplate(req.Name, req.HTML); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	t, err := a.templates.Create(req.Name, req.HTML)
	if err != nil {
		slog.Error("create template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the template.")
		return
	}
	slog.Info("template created", "id", t.ID, "name", t.Name)
	writeJSON(w, http.StatusCreated, t)
}

// findTemplate loads the template named by the {id} route parameter and
// writes the error response when it cannot.
func (a *API) findTemplate(w http.ResponseWriter, r *http.Request) (*models.ListingTemplate, bool) {
	if !a.requireStore(w) {
		return nil, false
	}
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid template ID.")
		return nil, false
	}
	t, err := a.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load the template.")
		return nil, false
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found.")
		return nil, false
	}
	return t, true
}

// TemplateGet returns one template.
func (a *API) TemplateGet(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// TemplateDelete removes a template and its versions.
func (a *API) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}
	if err := a.templates.Delete(id); err != nil {
		if errors.Is(err, store.ErrTemplateNotFound) {
			writeError(w, http.StatusNotFound, "Template not found.")
			return
		}
		slog.Error("delete template failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not delete the template.")
		return
	}
	a.invalidatePreview(r.Context(), id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// TemplatePreview renders the stored document through the generator. The
// result is cached per template version.
func (a *API) TemplatePreview(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	html, patchFailed := a.templateDocument(r.Context(), t)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if patchFailed {
		w.Header().Set("X-Patch-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}

// templateDocument regenerates a stored template, going through the
// preview cache when one is configured. Fallback documents are not cached.
func (a *API) templateDocument(ctx context.Context, t *models.ListingTemplate) (string, bool) {
	if a.previews != nil {
		if cached, ok := a.previews.Get(ctx, t.ID, t.Version); ok {
			return string(cached), false
		}
	}

	data := parser.Parse(t.HTMLContent)
	html, report := a.render(data)
	if a.previews != nil && !report.PatchFailed {
		a.previews.Set(ctx, t.ID, t.Version, []byte(html))
	}
	return html, report.PatchFailed
}

// versionRequest is the body of VersionCreate.
type versionRequest struct {
	Name        string             `json:"name"`
	HTML        string             `json:"html"`
	Description string             `json:"description"`
	VersionType models.VersionType `json:"version_type"`
}

// VersionCreate stores a version of a template. An "update" version also
// becomes the template's current document.
func (a *API) VersionCreate(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid template ID.")
		return
	}
	var req versionRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}
	if msg := validateVersion(req.Name, req.HTML, req.Description, req.VersionType); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	v, err := a.versions.Create(&models.TemplateVersion{
		TemplateID:  id,
		Name:        req.Name,
		HTMLContent: req.HTML,
		Description: req.Description,
		VersionType: req.VersionType,
	})
	switch {
	case errors.Is(err, store.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "Template not found.")
		return
	case errors.Is(err, store.ErrInvalidVersionType):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.Error("create version failed", "template", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the version.")
		return
	}

	if v.VersionType == models.VersionTypeUpdate {
		a.invalidatePreview(r.Context(), id, "update")
	}
	writeJSON(w, http.StatusCreated, v)
}

// VersionsList returns a template's versions, newest first.
func (a *API) VersionsList(w http.ResponseWriter, r *http.Request) {
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	versions, err := a.versions.ListByTemplate(t.ID)
	if err != nil {
		slog.Error("list versions failed", "template", t.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load versions.")
		return
	}
	if versions == nil {
		versions = []*models.TemplateVersion{}
	}
	writeJSON(w, http.StatusOK, versions)
}

// TemplatePublish uploads the current document to the public bucket,
// archives its source in the private bucket and returns the public URL.
func (a *API) TemplatePublish(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Publishing is not configured.")
		return
	}
	t, ok := a.findTemplate(w, r)
	if !ok {
		return
	}

	html, _ := a.templateDocument(r.Context(), t)
	name := slug.Generate(t.Name)
	if name == "" {
		name = "listing"
	}
	url, err := a.storageClient.PublishExport(r.Context(), fmt.Sprintf("%s-%d.html", name, t.Version), []byte(html))
	if err != nil {
		slog.Error("publish template failed", "id", t.ID, "error", err)
		writeError(w, http.StatusBadGateway, "Could not upload the document.")
		return
	}
	if _, err := a.storageClient.ArchiveSource(r.Context(), t.ID, t.Version, []byte(t.HTMLContent)); err != nil {
		slog.Warn("archive template source failed", "id", t.ID, "version", t.Version, "error", err)
	}
	slog.Info("template published", "id", t.ID, "version", t.Version, "url", url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// invalidatePreview drops cached previews of a template.
func (a *API) invalidatePreview(ctx context.Context, id uuid.UUID, action string) {
	if a.previews == nil {
		return
	}
	a.previews.InvalidateTemplate(ctx, id)
	slog.Debug("preview cache invalidated", "template", id, "action", action)
}
