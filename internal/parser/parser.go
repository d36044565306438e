// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package parser extracts a structured TemplateData record from arbitrary
// listing HTML. Every field is located by an ordered list of heuristics;
// the first one that matches wins. Parsing never fails: broken input
// degrades to defaults and the failure is logged.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listingeditor/internal/currency"
	"listingeditor/internal/models"
)

// DefaultIcon is the box icon used for placeholder company sections.
const DefaultIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M21 16V8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16z"></path><polyline points="3.27 6.96 12 12.01 20.73 6.96"></polyline><line x1="12" y1="22.08" x2="12" y2="12"></line></svg>`

// placeholderCopy is the generic trust copy shown when a document has no
// recognizable company sections. The editor always gets three cards.
var placeholderCopy = []struct{ title, description string }{
	{"Fast Shipping", "Orders placed on business days ship within 24 hours."},
	{"Secure Payment", "Pay safely with all common payment methods."},
	{"Personal Support", "Our team answers every question quickly and personally."},
}

// PlaceholderSections returns the three generic company sections, each with
// a fresh id.
func PlaceholderSections() []models.CompanySection {
	out := make([]models.CompanySection, len(placeholderCopy))
	for i, c := range placeholderCopy {
		out[i] = models.CompanySection{
			ID:          models.NewItemID(),
			Title:       c.title,
			Description: c.description,
			SVG:         DefaultIcon,
		}
	}
	return out
}

// Default returns the blank TemplateData used when parsing fails.
func Default() models.TemplateData {
	return models.TemplateData{
		Currency:    currency.DefaultCode,
		Images:      []models.ImageItem{},
		Specs:       []models.SpecItem{},
		CompanyInfo: PlaceholderSections(),
	}
}

// Result is the outcome of ParseWithReport.
type Result struct {
	Data models.TemplateData
	// Degraded is set when the document could not be parsed or no listing
	// field was recognized; callers surface it as a non-fatal warning.
	Degraded bool
	// Notes records which strategy produced each field.
	Notes []string
}

// Parse extracts TemplateData from a complete HTML document. It never
// panics; on internal failure it returns Default().
func Parse(src string) models.TemplateData {
	return ParseWithReport(src).Data
}

// ParseWithReport is Parse plus diagnostics. The returned data keeps src as
// RawHTML so the original listing is never lost, even on failure.
func ParseWithReport(src string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("listing parse failed", "error", r)
			res = Result{Data: Default(), Degraded: true, Notes: []string{fmt.Sprintf("parse failed: %v", r)}}
			res.Data.RawHTML = src
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		slog.Error("listing parse failed", "error", err)
		res = Result{Data: Default(), Degraded: true, Notes: []string{"parse failed: " + err.Error()}}
		res.Data.RawHTML = src
		return res
	}

	p := &docParser{doc: doc, raw: src}
	data := models.TemplateData{RawHTML: src, Currency: currency.DefaultCode}

	data.Title = extract(p, "title", "", p.title)
	data.Subtitle = extract(p, "subtitle", "", p.subtitle)
	pc := extract(p, "price", priceInfo{code: currency.DefaultCode}, p.price)
	data.Price, data.Currency = pc.price, pc.code
	data.Logo = extract(p, "logo", "", p.logo)
	data.Description = extract(p, "description", "", p.description)
	data.Images = extract(p, "images", []models.ImageItem{}, p.images)
	data.Specs = extract(p, "specs", []models.SpecItem{}, p.specs)
	data.CompanyInfo = extract(p, "company", []models.CompanySection(nil), p.company)
	if len(data.CompanyInfo) == 0 {
		p.note("company", "placeholders")
		data.CompanyInfo = PlaceholderSections()
	}

	degraded := data.Title == "" && data.Price == "" && data.Description == "" &&
		len(data.Images) == 0 && len(data.Specs) == 0
	if degraded {
		slog.Warn("listing parse recognized no fields", "bytes", len(src))
		p.notes = append(p.notes, "no listing fields recognized")
	}

	return Result{Data: data, Degraded: degraded, Notes: p.notes}
}

// docParser carries the parsed document and the raw source for the regex
// fallbacks.
type docParser struct {
	doc   *goquery.Document
	raw   string
	notes []string
}

func (p *docParser) note(field, strategy string) {
	p.notes = append(p.notes, field+": "+strategy)
}

// extract runs one field extractor, isolating its panics so a single bad
// heuristic cannot take down the whole parse.
func extract[T any](p *docParser, field string, fallback T, fn func() (T, string)) (out T) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("listing field extraction failed", "field", field, "error", r)
			p.note(field, "failed")
			out = fallback
		}
	}()
	v, strategy := fn()
	if strategy == "" {
		return fallback
	}
	p.note(field, strategy)
	return v
}
