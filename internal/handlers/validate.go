// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"listingeditor/internal/models"
)

// Validation limits for template, version and export fields.
const (
	maxTemplateNameLen = 200
	maxTemplateHTMLLen = 2_000_000
	maxDescriptionLen  = 2_000
	maxExportNameLen   = 200
)

// validateTemplate checks a template's name and document and returns the
// first error found. An empty document is allowed; it opens blank.
func validateTemplate(name, htmlContent string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Template name is required."
	}
	if utf8.RuneCountInString(name) > maxTemplateNameLen {
		return "Template name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(htmlContent) > maxTemplateHTMLLen {
		return "Template HTML is too long (max 2,000,000 characters)."
	}
	return ""
}

// validateVersion checks a version save request.
func validateVersion(name, htmlContent, description string, versionType models.VersionType) string {
	if !versionType.Valid() {
		return `Version type must be "update" or "autosave".`
	}
	if msg := validateTemplate(name, htmlContent); msg != "" {
		return strings.Replace(msg, "Template name", "Version name", 1)
	}
	if strings.TrimSpace(htmlContent) == "" {
		return "Version HTML is required."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 2,000 characters)."
	}
	return ""
}

// validateExportName checks the optional export file name.
func validateExportName(name string) string {
	if utf8.RuneCountInString(name) > maxExportNameLen {
		return "Export name is too long (max 200 characters)."
	}
	return ""
}
