// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package currency

import "testing"

func TestSymbol(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"USD", "$"},
		{"EUR", "€"},
		{"GBP", "£"},
		{"JPY", "¥"},
		{"CHF", "CHF"},
		{"usd", "$"},
		{"XYZ", "XYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Symbol(tt.code); got != tt.want {
				t.Errorf("Symbol(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format("19.99", "JPY"); got != "¥19.99" {
		t.Errorf("Format JPY = %q, want %q", got, "¥19.99")
	}
	if got := Format("19.99", "XYZ"); got != "XYZ19.99" {
		t.Errorf("Format XYZ = %q, want %q", got, "XYZ19.99")
	}
	if got := Format("", "EUR"); got != "€" {
		t.Errorf("Format empty = %q, want %q", got, "€")
	}
}

func TestCodeForSymbol(t *testing.T) {
	tests := []struct {
		glyph string
		want  string
	}{
		{"", "EUR"},
		{"$", "USD"},
		{"¥", "JPY"},
		{"€", "EUR"},
		{"A$", "AUD"},
		{"kr", "SEK"},
		{"?", "?"},
	}
	for _, tt := range tests {
		if got := CodeForSymbol(tt.glyph); got != tt.want {
			t.Errorf("CodeForSymbol(%q) = %q, want %q", tt.glyph, got, tt.want)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("EUR") || !Known("brl") {
		t.Error("expected EUR and BRL to be known")
	}
	if Known("XYZ") {
		t.Error("XYZ should not be known")
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text      string
		wantPrice string
		wantCode  string
		wantOK    bool
	}{
		{"€49.99", "49.99", "EUR", true},
		{"$ 10", "10", "USD", true},
		{"Price: 19,99 €", "19,99", "EUR", true},
		{"USD 1,299.00", "1,299.00", "USD", true},
		{"NZ$15", "15", "NZD", true},
		{"1.299,00", "1.299,00", "EUR", true},
		{"99 zł", "99", "PLN", true},
		{"free", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			price, code, ok := ParsePrice(tt.text)
			if ok != tt.wantOK || price != tt.wantPrice || code != tt.wantCode {
				t.Errorf("ParsePrice(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.text, price, code, ok, tt.wantPrice, tt.wantCode, tt.wantOK)
			}
		})
	}
}
