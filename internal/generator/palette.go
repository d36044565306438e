// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"regexp"

	"listingeditor/internal/models"
)

// Palette holds the colors and fonts of a freshly generated listing.
type Palette struct {
	Primary     string
	Secondary   string
	Accent      string
	Background  string
	Text        string
	FontHeading string
	FontBody    string
}

// DefaultPalette is used for every value neither the listing nor its style
// preset sets.
var DefaultPalette = Palette{
	Primary:     "#2c3e50",
	Secondary:   "#34495e",
	Accent:      "#e67e22",
	Background:  "#ffffff",
	Text:        "#333333",
	FontHeading: "'Helvetica Neue', Arial, sans-serif",
	FontBody:    "Arial, sans-serif",
}

var (
	colorValue = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\([0-9.,%\s]+\)|hsla?\([0-9.,%\s]+\))$`)
	fontValue  = regexp.MustCompile(`^[A-Za-z0-9 ,'"-]{1,120}$`)
)

// ResolvePalette layers the explicit overrides on data over the preset
// (may be nil) over DefaultPalette. Values that are not plain CSS colors or
// font lists are ignored since they end up inside a <style> block.
func ResolvePalette(data models.TemplateData, preset *models.StylePreset) Palette {
	p := DefaultPalette
	if preset != nil {
		p = p.merge(Palette{
			Primary:     preset.ColorPrimary,
			Secondary:   preset.ColorSecondary,
			Accent:      preset.ColorAccent,
			Background:  preset.ColorBackground,
			Text:        preset.ColorText,
			FontHeading: preset.FontHeading,
			FontBody:    preset.FontBody,
		})
	}
	return p.merge(Palette{
		Primary:     data.ColorPrimary,
		Secondary:   data.ColorSecondary,
		Accent:      data.ColorAccent,
		Background:  data.ColorBackground,
		Text:        data.ColorText,
		FontHeading: data.FontHeading,
		FontBody:    data.FontBody,
	})
}

func (p Palette) merge(o Palette) Palette {
	pick := func(cur, next string, re *regexp.Regexp) string {
		if next != "" && re.MatchString(next) {
			return next
		}
		return cur
	}
	return Palette{
		Primary:     pick(p.Primary, o.Primary, colorValue),
		Secondary:   pick(p.Secondary, o.Secondary, colorValue),
		Accent:      pick(p.Accent, o.Accent, colorValue),
		Background:  pick(p.Background, o.Background, colorValue),
		Text:        pick(p.Text, o.Text, colorValue),
		FontHeading: pick(p.FontHeading, o.FontHeading, fontValue),
		FontBody:    pick(p.FontBody, o.FontBody, fontValue),
	}
}
