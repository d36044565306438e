// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-friendly slugs and export file names from
// listing titles.
package slug

import (
	"regexp"
	"strings"
)

// ExportSuffix is appended to every downloaded listing document.
const ExportSuffix = "_ebay-template.html"

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// unsafeFileChars are rejected by common file systems or break the
	// Content-Disposition header.
	unsafeFileChars = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Vintage Camera, 1968!" → "vintage-camera-1968"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// ExportFilename builds the download name for a listing: the name is
// lowercased, whitespace runs become hyphens and the export suffix is
// appended. Other characters, including non-ASCII letters, are kept.
// An empty name falls back to "listing".
// Example: "Vintage Camera" → "vintage-camera_ebay-template.html"
func ExportFilename(name string) string {
	result := unsafeFileChars.ReplaceAllString(name, "")
	result = strings.ToLower(strings.TrimSpace(result))
	result = whitespace.ReplaceAllString(result, "-")
	if result == "" {
		result = "listing"
	}
	return result + ExportSuffix
}
