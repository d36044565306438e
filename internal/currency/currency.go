// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package currency maps ISO currency codes to display glyphs and extracts
// prices from free-form listing text.
package currency

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultCode is assumed when a price carries no recognizable currency.
const DefaultCode = "EUR"

// symbols is the closed code -> glyph table. Unknown codes render as the
// raw code string.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"SEK": "kr",
	"NZD": "NZ$",
	"PLN": "zł",
	"KRW": "₩",
	"INR": "₹",
	"RUB": "₽",
	"BRL": "R$",
}

// preferredCode resolves glyphs shared by several codes.
var preferredCode = map[string]string{
	"$": "USD",
	"¥": "JPY",
}

var (
	glyphToCode  = buildReverse()
	pricePattern = buildPricePattern()
)

// Symbol returns the display glyph for an ISO code, or the code itself
// when the code is not in the table.
func Symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Format renders a price the way listings display it: glyph then amount.
func Format(price, code string) string {
	return Symbol(code) + price
}

// CodeForSymbol maps a glyph back to an ISO code. An empty glyph yields
// DefaultCode; an unknown glyph is returned unchanged.
func CodeForSymbol(glyph string) string {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return DefaultCode
	}
	if code, ok := glyphToCode[glyph]; ok {
		return code
	}
	return glyph
}

// Known reports whether code is part of the closed currency table.
func Known(code string) bool {
	_, ok := symbols[strings.ToUpper(code)]
	return ok
}

// ParsePrice finds the first price in text. It returns the numeric literal
// as written (separators preserved) and the ISO code derived from a leading
// or trailing glyph, or from a three-letter code prefix.
func ParsePrice(text string) (price, code string, ok bool) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	price = m[3]
	switch {
	case m[1] != "":
		code = CodeForSymbol(m[1])
	case m[2] != "":
		code = strings.ToUpper(m[2])
	case m[4] != "":
		code = CodeForSymbol(m[4])
	default:
		code = DefaultCode
	}
	return price, code, true
}

func buildReverse() map[string]string {
	out := make(map[string]string, len(symbols))
	for code, glyph := range symbols {
		if pref, ok := preferredCode[glyph]; ok {
			out[glyph] = pref
			continue
		}
		out[glyph] = code
	}
	return out
}

// buildPricePattern assembles
//
//	(glyph)? | (CODE)?  amount  (glyph)?
//
// with glyphs ordered longest first so "A$" wins over "$".
func buildPricePattern() *regexp.Regexp {
	glyphs := make([]string, 0, len(glyphToCode))
	for g := range glyphToCode {
		glyphs = append(glyphs, g)
	}
	sort.Slice(glyphs, func(i, j int) bool {
		if len(glyphs[i]) != len(glyphs[j]) {
			return len(glyphs[i]) > len(glyphs[j])
		}
		return glyphs[i] < glyphs[j]
	})
	quoted := make([]string, len(glyphs))
	for i, g := range glyphs {
		quoted[i] = regexp.QuoteMeta(g)
	}
	alt := strings.Join(quoted, "|")
	return regexp.MustCompile(
		`(?:(` + alt + `)|\b([A-Z]{3}))?\s*` +
			`(\d+(?:[.,]\d{3})*(?:[.,]\d+)?)` +
			`(?:\s*(` + alt + `))?`,
	)
}
