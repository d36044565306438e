// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"listingeditor/internal/editor"
	"listingeditor/internal/models"
	"listingeditor/internal/store"
)

// DefaultAutosaveKeep is how many autosaves are kept per template.
const DefaultAutosaveKeep = 20

// NewAutosaver returns the editor autosave hook: it stores the session's
// document as an "autosave" version of its template and prunes older
// autosaves. Sessions not linked to a template are skipped.
func NewAutosaver(versions *store.VersionStore, keep int) editor.AutosaveFunc {
	return func(ctx context.Context, st editor.State) error {
		if st.TemplateID == uuid.Nil {
			slog.Debug("autosave skipped, session has no template", "session", st.ID)
			return nil
		}
		v, err := versions.Create(&models.TemplateVersion{
			TemplateID:  st.TemplateID,
			Name:        "Autosave",
			HTMLContent: st.HTML,
			Description: "editor session " + st.ID,
			VersionType: models.VersionTypeAutosave,
		})
		if err != nil {
			return fmt.Errorf("autosave template %s: %w", st.TemplateID, err)
		}
		if keep > 0 {
			if n, err := versions.PruneAutosaves(st.TemplateID, keep); err != nil {
				slog.Warn("autosave prune failed", "template", st.TemplateID, "error", err)
			} else if n > 0 {
				slog.Debug("autosaves pruned", "template", st.TemplateID, "deleted", n)
			}
		}
		slog.Debug("autosave stored", "template", st.TemplateID, "version", v.ID)
		return nil
	}
}
