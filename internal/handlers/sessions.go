// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"listingeditor/internal/editor"
	"listingeditor/internal/models"
	"listingeditor/internal/slug"
)

// sessionResponse describes an editor session. The source document is
// left out; the preview endpoint serves the generated one.
type sessionResponse struct {
	ID          string              `json:"id"`
	TemplateID  uuid.UUID           `json:"template_id"`
	Data        models.TemplateData `json:"data"`
	PatchFailed bool                `json:"patch_failed"`
	ItemID      string              `json:"item_id,omitempty"`
}

func newSessionResponse(s *editor.Session) sessionResponse {
	data := s.Data()
	data.RawHTML = ""
	return sessionResponse{
		ID:          s.ID(),
		TemplateID:  s.TemplateID(),
		Data:        data,
		PatchFailed: s.PatchFailed(),
	}
}

// SessionCreate opens an editor session from a stored template, a raw
// document or nothing (a blank fresh listing).
func (a *API) SessionCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"template_id"`
		HTML       string `json:"html"`
		PresetID   string `json:"preset_id"`
	}
	if err := a.decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		badBody(w, err)
		return
	}

	templateID := uuid.Nil
	html := req.HTML
	if req.TemplateID != "" {
		if !a.requireStore(w) {
			return
		}
		id, err := uuid.Parse(req.TemplateID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid template ID.")
			return
		}
		t, err := a.templates.FindByID(id)
		if err != nil {
			slog.Error("find template failed", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Could not load the template.")
			return
		}
		if t == nil {
			writeError(w, http.StatusNotFound, "Template not found.")
			return
		}
		templateID, html = t.ID, t.HTMLContent
	}

	s, err := a.sessions.Create(r.Context(), templateID, html, a.preset(req.PresetID))
	if err != nil {
		slog.Error("open editor session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not open an editor session.")
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(s))
}

// findSession loads the session named by the {sid} route parameter.
func (a *API) findSession(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	sid := chi.URLParam(r, "sid")
	s, err := a.sessions.Get(r.Context(), sid)
	if err != nil {
		slog.Error("load editor session failed", "session", sid, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load the editor session.")
		return nil, false
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "Editor session not found.")
		return nil, false
	}
	return s, true
}

// SessionGet returns the session's current listing data.
func (a *API) SessionGet(w http.ResponseWriter, r *http.Request) {
	s, ok := a.findSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(s))
}

// SessionOp applies one edit operation and returns the updated data.
func (a *API) SessionOp(w http.ResponseWriter, r *http.Request) {
	s, ok := a.findSession(w, r)
	if !ok {
		return
	}
	var op editor.Op
	if err := a.decodeJSON(w, r, &op); err != nil {
		badBody(w, err)
		return
	}

	itemID, err := s.Apply(op)
	switch {
	case errors.Is(err, editor.ErrUnknownOp):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, editor.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found.")
		return
	case errors.Is(err, editor.ErrInvalidURL):
		writeError(w, http.StatusUnprocessableEntity, "Image URL must be http(s) or relative.")
		return
	case err != nil:
		slog.Error("editor op failed", "session", s.ID(), "op", op.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not apply the edit.")
		return
	}

	if err := a.sessions.Save(r.Context(), s); err != nil {
		slog.Warn("editor session persist failed", "session", s.ID(), "error", err)
	}
	resp := newSessionResponse(s)
	resp.ItemID = itemID
	writeJSON(w, http.StatusOK, resp)
}

// SessionPreview serves the session's generated document.
func (a *API) SessionPreview(w http.ResponseWriter, r *http.Request) {
	s, ok := a.findSession(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.PatchFailed() {
		w.Header().Set("X-Patch-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, s.HTML())
}

// SessionExport downloads the session's document. The file is named after
// the "name" query parameter, or the listing title.
func (a *API) SessionExport(w http.ResponseWriter, r *http.Request) {
	s, ok := a.findSession(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if msg := validateExportName(name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if name == "" {
		name = s.Data().Title
	}
	writeAttachment(w, slug.ExportFilename(name), s.PatchFailed(), s.HTML())
}

// SessionSave stores the session's document as an "update" version of its
// template, creating the template first for unsaved sessions.
func (a *API) SessionSave(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}
	s, ok := a.findSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := a.decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		badBody(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = s.Data().Title
	}
	html := s.HTML()

	if s.TemplateID() == uuid.Nil {
		if msg := validateTemplate(req.Name, html); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		t, err := a.templates.Create(req.Name, html)
		if err != nil {
			slog.Error("create template from session failed", "session", s.ID(), "error", err)
			writeError(w, http.StatusInternalServerError, "Could not save the template.")
			return
		}
		s.AttachTemplate(t.ID)
		a.persist(r, s)
		writeJSON(w, http.StatusCreated, t)
		return
	}

	versionType := models.VersionTypeUpdate
	if msg := validateVersion(req.Name, html, req.Description, versionType); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	v, err := a.versions.Create(&models.TemplateVersion{
		TemplateID:  s.TemplateID(),
		Name:        req.Name,
		HTMLContent: html,
		Description: req.Description,
		VersionType: versionType,
	})
	if err != nil {
		slog.Error("save session version failed", "session", s.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the version.")
		return
	}
	a.invalidatePreview(r.Context(), v.TemplateID, "update")
	a.persist(r, s)
	writeJSON(w, http.StatusCreated, v)
}

// SessionDelete closes a session and drops its stored state.
func (a *API) SessionDelete(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if err := a.sessions.Discard(r.Context(), sid); err != nil {
		slog.Warn("discard editor session failed", "session", sid, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) persist(r *http.Request, s *editor.Session) {
	if err := a.sessions.Save(r.Context(), s); err != nil {
		slog.Warn("editor session persist failed", "session", s.ID(), "error", err)
	}
}
