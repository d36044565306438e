// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// VersionType categorizes a stored template version by how it was produced.
type VersionType string

const (
	VersionTypeUpdate   VersionType = "update"
	VersionTypeAutosave VersionType = "autosave"
)

// Valid reports whether v is one of the accepted version types.
func (v VersionType) Valid() bool {
	return v == VersionTypeUpdate || v == VersionTypeAutosave
}

// ListingTemplate is a stored listing page. HTMLContent always holds the
// latest saved document; older states live in TemplateVersion rows.
type ListingTemplate struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	HTMLContent string    `json:"html_content"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TemplateVersion is an immutable snapshot of a listing template's HTML.
type TemplateVersion struct {
	ID          uuid.UUID   `json:"id"`
	TemplateID  uuid.UUID   `json:"template_id"`
	Name        string      `json:"name"`
	HTMLContent string      `json:"html"`
	Description string      `json:"description"`
	VersionType VersionType `json:"version_type"`
	Version     int         `json:"version"`
	CreatedAt   time.Time   `json:"created_at"`
}
