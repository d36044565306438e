// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator turns a TemplateData record back into a listing
// document. When the record carries the source document, the generator
// patches the fields it knows in place and leaves every other byte of
// markup alone. Without a source it renders a fresh standalone layout.
package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listingeditor/internal/models"
)

// Generation modes reported in Report.Mode.
const (
	ModePatch = "patch"
	ModeFresh = "fresh"
)

// Report describes how a document was produced.
type Report struct {
	Mode string `json:"mode"`
	// PatchFailed is set when patching hit an internal error and the
	// original document was returned unchanged.
	PatchFailed bool `json:"patch_failed"`
	// Steps lists the patch steps that found a target and changed it.
	Steps []string `json:"steps,omitempty"`
}

// Generate produces the listing document for data.
func Generate(data models.TemplateData) string {
	out, _ := GenerateWithReport(data)
	return out
}

// GenerateWithReport is Generate plus a description of what happened.
// Fresh documents use the palette from the style overrides on data.
func GenerateWithReport(data models.TemplateData) (string, Report) {
	return GenerateWith(data, ResolvePalette(data, nil))
}

// GenerateWith is GenerateWithReport with an explicit palette for fresh
// documents, typically resolved against the listing's style preset.
// Patch mode ignores the palette: the source document keeps its styling.
func GenerateWith(data models.TemplateData, pal Palette) (string, Report) {
	if strings.TrimSpace(data.RawHTML) == "" {
		out, err := renderFresh(data, pal)
		if err != nil {
			slog.Error("fresh listing render failed", "error", err)
		}
		return out, Report{Mode: ModeFresh}
	}

	out, steps, err := patch(data)
	if err != nil {
		slog.Warn("listing patch failed, keeping original document", "error", err)
		return data.RawHTML, Report{Mode: ModePatch, PatchFailed: true}
	}
	return out, Report{Mode: ModePatch, Steps: steps}
}

// patch applies every step to a parsed copy of data.RawHTML. A panic in
// any step aborts the whole patch; partial results are never returned.
func patch(data models.TemplateData) (out string, steps []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, steps, err = "", nil, fmt.Errorf("patch panicked: %v", r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data.RawHTML))
	if err != nil {
		return "", nil, fmt.Errorf("parse source document: %w", err)
	}

	p := &patcher{doc: doc, data: data}
	for _, s := range patchSteps {
		s.run(p)
	}

	out, err = doc.Html()
	if err != nil {
		return "", nil, fmt.Errorf("serialize document: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", nil, fmt.Errorf("serialize document: empty output")
	}
	return out, p.steps, nil
}
