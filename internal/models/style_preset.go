// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StylePreset is a named palette and font pairing applied when a listing
// is generated from scratch. TemplateData.TemplateStyleID references one.
type StylePreset struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ColorPrimary    string    `json:"color_primary"`
	ColorSecondary  string    `json:"color_secondary"`
	ColorAccent     string    `json:"color_accent"`
	ColorBackground string    `json:"color_background"`
	ColorText       string    `json:"color_text"`
	FontHeading     string    `json:"font_heading"`
	FontBody        string    `json:"font_body"`
	IsDefault       bool      `json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
}
