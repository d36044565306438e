// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans seller-supplied fragments before they enter a
// listing document. Only edits made through the editor pass through here;
// markup that arrives inside an uploaded document is left as it is.
package sanitize

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicy = newFragmentPolicy()
	iconPolicy     = newIconPolicy()
)

func newFragmentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("style").OnElements("span", "div", "p", "td", "th")
	policy.AllowStyling()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

var svgElements = []string{
	"svg", "g", "path", "circle", "ellipse", "rect", "line", "polyline",
	"polygon", "title", "defs", "use",
}

var svgAttrs = []string{
	"xmlns", "viewBox", "width", "height", "fill", "stroke", "stroke-width",
	"stroke-linecap", "stroke-linejoin", "d", "cx", "cy", "r", "rx", "ry",
	"x", "y", "x1", "y1", "x2", "y2", "points", "transform", "opacity",
	"fill-rule", "clip-rule", "aria-label", "role", "class",
}

func newIconPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(svgElements...)
	policy.AllowAttrs(svgAttrs...).OnElements(svgElements...)
	return policy
}

// Fragment cleans an HTML fragment such as a description, keeping
// formatting, links, images and tables.
func Fragment(html string) string {
	return strings.TrimSpace(fragmentPolicy.Sanitize(html))
}

// Icon cleans inline SVG markup. Scripts, event handlers and foreign
// elements are removed.
func Icon(svg string) string {
	return strings.TrimSpace(iconPolicy.Sanitize(svg))
}

// URL returns u when it is an absolute http(s) URL or a relative path, and
// "" otherwise.
func URL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		if parsed.Host == "" {
			return ""
		}
		return u
	case "":
		if strings.HasPrefix(u, "//") || parsed.Host != "" {
			return ""
		}
		return u
	default:
		return ""
	}
}

// Logo accepts either inline SVG or an image URL.
func Logo(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(strings.ToLower(v), "<svg") {
		return Icon(v)
	}
	return URL(v)
}
