// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"listingeditor/internal/models"
)

// StylePresetStore handles style preset database operations.
type StylePresetStore struct {
	db *sql.DB
}

// NewStylePresetStore creates a new StylePresetStore.
func NewStylePresetStore(db *sql.DB) *StylePresetStore {
	return &StylePresetStore{db: db}
}

// presetColumns lists the columns selected in style preset queries.
const presetColumns = `id, name, color_primary, color_secondary, color_accent,
	color_background, color_text, font_heading, font_body, is_default, created_at`

// scanPreset scans a style preset row from the result set.
func scanPreset(scanner interface{ Scan(...any) error }) (*models.StylePreset, error) {
	var p models.StylePreset
	err := scanner.Scan(
		&p.ID, &p.Name, &p.ColorPrimary, &p.ColorSecondary, &p.ColorAccent,
		&p.ColorBackground, &p.ColorText, &p.FontHeading, &p.FontBody,
		&p.IsDefault, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all presets, the default first.
func (s *StylePresetStore) List() ([]models.StylePreset, error) {
	rows, err := s.db.Query(`
		SELECT ` + presetColumns + `
		FROM style_presets
		ORDER BY is_default DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list style presets: %w", err)
	}
	defer rows.Close()

	var items []models.StylePreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan style preset: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID returns a preset by ID. Returns nil if not found.
func (s *StylePresetStore) FindByID(id uuid.UUID) (*models.StylePreset, error) {
	row := s.db.QueryRow(`SELECT `+presetColumns+` FROM style_presets WHERE id = $1`, id)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find style preset: %w", err)
	}
	return p, nil
}

// FindDefault returns the default preset, or nil when none is marked.
func (s *StylePresetStore) FindDefault() (*models.StylePreset, error) {
	row := s.db.QueryRow(`SELECT ` + presetColumns + ` FROM style_presets WHERE is_default LIMIT 1`)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find default style preset: %w", err)
	}
	return p, nil
}
