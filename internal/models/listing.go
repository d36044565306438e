// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data types shared between the listing
// transforms, the editor and the storage layer.
package models

import "github.com/google/uuid"

// ImageItem is one gallery image. Order within TemplateData.Images drives
// the gallery position and the CSS selector index.
type ImageItem struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// SpecItem is a single key/value row of the technical specification.
type SpecItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// CompanySection is one "why buy from us" card. SVG holds raw markup.
type CompanySection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SVG         string `json:"svg"`
}

// TemplateData is the structured representation of a listing page.
// A non-empty RawHTML switches the generator into patch mode.
type TemplateData struct {
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle,omitempty"`
	Price       string           `json:"price,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Description string           `json:"description,omitempty"`
	Logo        string           `json:"logo,omitempty"`
	Images      []ImageItem      `json:"images"`
	Specs       []SpecItem       `json:"specs"`
	CompanyInfo []CompanySection `json:"companyInfo"`
	RawHTML     string           `json:"rawHtml,omitempty"`

	// Style overrides, consulted only when generating a fresh document.
	ColorPrimary    string `json:"colorPrimary,omitempty"`
	ColorSecondary  string `json:"colorSecondary,omitempty"`
	ColorAccent     string `json:"colorAccent,omitempty"`
	ColorBackground string `json:"colorBackground,omitempty"`
	ColorText       string `json:"colorText,omitempty"`
	FontHeading     string `json:"fontHeading,omitempty"`
	FontBody        string `json:"fontBody,omitempty"`
	TemplateStyleID string `json:"templateStyleId,omitempty"`
}

// NewItemID returns a fresh identifier for an image, spec or company
// section. Ids are editor-only tokens and never derived from content.
func NewItemID() string {
	return uuid.NewString()
}

// Clone returns a deep copy so edits on the copy never alias the
// original slices.
func (d TemplateData) Clone() TemplateData {
	out := d
	out.Images = append([]ImageItem(nil), d.Images...)
	out.Specs = append([]SpecItem(nil), d.Specs...)
	out.CompanyInfo = append([]CompanySection(nil), d.CompanyInfo...)
	return out
}

// EnsureIDs assigns ids to items that arrived without one, for example
// from a client that posted raw rows.
func (d *TemplateData) EnsureIDs() {
	for i := range d.Images {
		if d.Images[i].ID == "" {
			d.Images[i].ID = NewItemID()
		}
	}
	for i := range d.Specs {
		if d.Specs[i].ID == "" {
			d.Specs[i].ID = NewItemID()
		}
	}
	for i := range d.CompanyInfo {
		if d.CompanyInfo[i].ID == "" {
			d.CompanyInfo[i].ID = NewItemID()
		}
	}
}
