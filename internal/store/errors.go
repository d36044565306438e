// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL access for listing templates, their
// versions and the style presets used for fresh documents. Lookups return
// (nil, nil) when a row does not exist.
package store

import "errors"

var (
	// ErrInvalidVersionType is returned when a version is neither an
	// update nor an autosave.
	ErrInvalidVersionType = errors.New("invalid version type")

	// ErrTemplateNotFound is returned by writes that target a missing
	// template.
	ErrTemplateNotFound = errors.New("template not found")
)
