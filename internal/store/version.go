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

// versionColumns lists all columns for template_versions SELECTs.
const versionColumns = `id, template_id, name, html_content, description,
	version_type, version, created_at`

// VersionStore provides access to template versions in PostgreSQL.
type VersionStore struct {
	db *sql.DB
}

// NewVersionStore creates a new VersionStore backed by the given database.
func NewVersionStore(db *sql.DB) *VersionStore {
	return &VersionStore{db: db}
}

// scanVersion scans a single template_versions row into a TemplateVersion.
func scanVersion(scanner interface{ Scan(...any) error }) (*models.TemplateVersion, error) {
	var v models.TemplateVersion
	err := scanner.Scan(
		&v.ID, &v.TemplateID, &v.Name, &v.HTMLContent, &v.Description,
		&v.VersionType, &v.Version, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create stores a version of a template. An update version also becomes
// the template's current document and bumps its version number; an
// autosave is recorded against the current version and leaves the
// template untouched.
func (s *VersionStore) Create(v *models.TemplateVersion) (*models.TemplateVersion, error) {
	if !v.VersionType.Valid() {
		return nil, fmt.Errorf("create version %q: %w", v.VersionType, ErrInvalidVersionType)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var version int
	err = tx.QueryRow(`SELECT version FROM listing_templates WHERE id = $1 FOR UPDATE`, v.TemplateID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock template: %w", err)
	}

	if v.VersionType == models.VersionTypeUpdate {
		err = tx.QueryRow(`
			UPDATE listing_templates SET
				html_content = $1, version = version + 1, updated_at = NOW()
			WHERE id = $2
			RETURNING version
		`, v.HTMLContent, v.TemplateID).Scan(&version)
		if err != nil {
			return nil, fmt.Errorf("bump template version: %w", err)
		}
	}

	row := tx.QueryRow(`
		INSERT INTO template_versions (
			template_id, name, html_content, description, version_type, version
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+versionColumns,
		v.TemplateID, v.Name, v.HTMLContent, v.Description, v.VersionType, version,
	)
	created, err := scanVersion(row)
	if err != nil {
		return nil, fmt.Errorf("insert version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit version: %w", err)
	}
	return created, nil
}

// ListByTemplate returns all versions of a template, newest first.
func (s *VersionStore) ListByTemplate(templateID uuid.UUID) ([]*models.TemplateVersion, error) {
	rows, err := s.db.Query(`
		SELECT `+versionColumns+`
		FROM template_versions
		WHERE template_id = $1
		ORDER BY created_at DESC
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.TemplateVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// FindByID returns a single template version by its ID.
func (s *VersionStore) FindByID(id uuid.UUID) (*models.TemplateVersion, error) {
	row := s.db.QueryRow(`
		SELECT `+versionColumns+`
		FROM template_versions
		WHERE id = $1
	`, id)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

// PruneAutosaves deletes all but the newest keep autosaves of a template
// and returns how many rows were removed. Update versions are never pruned.
func (s *VersionStore) PruneAutosaves(templateID uuid.UUID, keep int) (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM template_versions
		WHERE template_id = $1 AND version_type = 'autosave'
		  AND id NOT IN (
			SELECT id FROM template_versions
			WHERE template_id = $1 AND version_type = 'autosave'
			ORDER BY created_at DESC
			LIMIT $2
		  )
	`, templateID, keep)
	if err != nil {
		return 0, fmt.Errorf("prune autosaves: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
