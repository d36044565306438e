// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// defaultPresets are the style presets offered for fresh listings. The
// first one is the default and mirrors the generator's built-in palette.
var defaultPresets = []struct {
	name                                         string
	primary, secondary, accent, background, text string
	heading, body                                string
}{
	{"Classic", "#2c3e50", "#34495e", "#e67e22", "#ffffff", "#333333", "'Helvetica Neue', Arial, sans-serif", "Arial, sans-serif"},
	{"Forest", "#2e7d32", "#558b2f", "#f9a825", "#fafaf5", "#263238", "Georgia, serif", "Verdana, sans-serif"},
	{"Midnight", "#1a237e", "#283593", "#ff4081", "#f5f5fa", "#212121", "'Trebuchet MS', sans-serif", "'Segoe UI', Tahoma, sans-serif"},
}

// Seed populates the database with the built-in style presets. It only
// inserts when the table is empty, so it is safe to run on every start.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM style_presets").Scan(&count); err != nil {
		return fmt.Errorf("seed check style presets: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for i, p := range defaultPresets {
		_, err := db.Exec(`
			INSERT INTO style_presets (name, color_primary, color_secondary, color_accent,
				color_background, color_text, font_heading, font_body, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (name) DO NOTHING
		`, p.name, p.primary, p.secondary, p.accent, p.background, p.text, p.heading, p.body, i == 0)
		if err != nil {
			return fmt.Errorf("seed insert style preset %s: %w", p.name, err)
		}
	}

	slog.Info("database seeded with style presets", "count", len(defaultPresets))
	return nil
}
