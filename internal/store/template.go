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

// templateColumns lists the columns selected in listing template queries.
const templateColumns = `id, name, html_content, version, created_at, updated_at`

// TemplateStore handles all listing template database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// scanTemplate scans a listing_templates row.
func scanTemplate(scanner interface{ Scan(...any) error }) (*models.ListingTemplate, error) {
	var t models.ListingTemplate
	err := scanner.Scan(&t.ID, &t.Name, &t.HTMLContent, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all templates, most recently updated first.
func (s *TemplateStore) List() ([]models.ListingTemplate, error) {
	rows, err := s.db.Query(`
		SELECT ` + templateColumns + `
		FROM listing_templates
		ORDER BY updated_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.ListingTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.ListingTemplate, error) {
	row := s.db.QueryRow(`
		SELECT `+templateColumns+`
		FROM listing_templates WHERE id = $1
	`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// Create inserts a new template at version 1.
func (s *TemplateStore) Create(name, html string) (*models.ListingTemplate, error) {
	row := s.db.QueryRow(`
		INSERT INTO listing_templates (name, html_content, version)
		VALUES ($1, $2, 1)
		RETURNING `+templateColumns,
		name, html,
	)
	t, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// UpdateHTML replaces the template's document and increments its version.
// It returns the new version number.
func (s *TemplateStore) UpdateHTML(id uuid.UUID, html string) (int, error) {
	var version int
	err := s.db.QueryRow(`
		UPDATE listing_templates SET
			html_content = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2
		RETURNING version
	`, html, id).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTemplateNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("update template html: %w", err)
	}
	return version, nil
}

// Delete removes a template and, through the foreign key, its versions.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM listing_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Count returns the total number of templates.
func (s *TemplateStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM listing_templates`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}
