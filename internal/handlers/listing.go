// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"listingeditor/internal/models"
	"listingeditor/internal/parser"
	"listingeditor/internal/slug"
)

// parseResponse is returned by Parse.
type parseResponse struct {
	Data    models.TemplateData `json:"data"`
	Warning string              `json:"warning,omitempty"`
	Notes   []string            `json:"notes,omitempty"`
}

// Parse extracts TemplateData from a listing document. The body is either
// the raw HTML or JSON {"html": "..."}. Parsing never fails; unusable input
// yields defaults and a warning.
func (a *API) Parse(w http.ResponseWriter, r *http.Request) {
	var src string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			HTML string `json:"html"`
		}
		if err := a.decodeJSON(w, r, &req); err != nil {
			badBody(w, err)
			return
		}
		src = req.HTML
	} else {
		body, err := a.readBody(w, r)
		if err != nil {
			badBody(w, err)
			return
		}
		src = string(body)
	}

	res := parser.ParseWithReport(src)
	resp := parseResponse{Data: res.Data, Notes: res.Notes}
	if res.Degraded {
		resp.Warning = "No listing fields were recognized; defaults were used."
	}
	writeJSON(w, http.StatusOK, resp)
}

// Generate renders TemplateData into a listing document. A non-empty
// rawHtml patches that document; otherwise a fresh one is built.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var data models.TemplateData
	if err := a.decodeJSON(w, r, &data); err != nil {
		badBody(w, err)
		return
	}
	data.EnsureIDs()

	html, report := a.render(data)
	writeHTML(w, report, html)
}

// exportRequest is TemplateData plus an optional file name.
type exportRequest struct {
	models.TemplateData
	ExportName string `json:"export_name"`
}

// Export renders TemplateData as a downloadable file named after the
// export name, or the title when no name is given.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}
	if msg := validateExportName(req.ExportName); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	req.TemplateData.EnsureIDs()

	name := strings.TrimSpace(req.ExportName)
	if name == "" {
		name = req.Title
	}
	html, report := a.render(req.TemplateData)
	writeAttachment(w, slug.ExportFilename(name), report.PatchFailed, html)
}

// writeAttachment sends html as a file download.
func writeAttachment(w http.ResponseWriter, filename string, patchFailed bool, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if patchFailed {
		w.Header().Set("X-Patch-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}
