// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the state of one open listing editor: the current
// TemplateData and the document last generated from it. Every edit
// regenerates the preview synchronously and schedules a debounced
// autosave that runs outside the edit path.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"listingeditor/internal/generator"
	"listingeditor/internal/markdown"
	"listingeditor/internal/models"
	"listingeditor/internal/parser"
	"listingeditor/internal/sanitize"
)

// DefaultDebounce is the quiet period after the last edit before an
// autosave fires.
const DefaultDebounce = 3 * time.Second

// autosaveTimeout bounds a single autosave call.
const autosaveTimeout = 10 * time.Second

var (
	// ErrItemNotFound is returned when an edit names an image, spec or
	// company section id the session does not hold.
	ErrItemNotFound = errors.New("item not found")

	// ErrUnknownOp is returned by Apply for an unrecognized operation.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrInvalidURL is returned when an image URL is not http(s) or relative.
	ErrInvalidURL = errors.New("invalid image url")
)

// State is the serializable snapshot of a session. It is what autosave
// receives and what the Valkey store persists.
type State struct {
	ID          string              `json:"id"`
	TemplateID  uuid.UUID           `json:"template_id"`
	Data        models.TemplateData `json:"data"`
	HTML        string              `json:"html"`
	PatchFailed bool                `json:"patch_failed"`
	Preset      *models.StylePreset `json:"preset,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AutosaveFunc persists a snapshot. Failures are logged and not retried.
type AutosaveFunc func(ctx context.Context, st State) error

// Options configures a new Session.
type Options struct {
	// TemplateID links the session to a stored template; uuid.Nil for an
	// unsaved document.
	TemplateID uuid.UUID
	// Preset supplies the palette for fresh documents.
	Preset   *models.StylePreset
	Autosave AutosaveFunc
	// Debounce defaults to DefaultDebounce when zero.
	Debounce time.Duration
}

// Session is one editor's working copy. All methods are safe for
// concurrent use, though a session normally has a single writer.
type Session struct {
	mu          sync.Mutex
	id          string
	templateID  uuid.UUID
	data        models.TemplateData
	html        string
	patchFailed bool
	preset      *models.StylePreset
	updatedAt   time.Time

	autosave AutosaveFunc
	debounce time.Duration
	timer    *time.Timer
	// pending counts scheduled autosaves; a timer only saves when its
	// generation is still current.
	pending uint64
}

// NewSession creates an empty session. Call Load or Blank to give it
// content.
func NewSession(id string, opts Options) *Session {
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Session{
		id:         id,
		templateID: opts.TemplateID,
		preset:     opts.Preset,
		autosave:   opts.Autosave,
		debounce:   debounce,
		data:       parser.Default(),
	}
}

// restore rebuilds a session from a persisted state without
// regenerating its document.
func restore(st State, opts Options) *Session {
	s := NewSession(st.ID, opts)
	s.templateID = st.TemplateID
	s.data = st.Data
	s.html = st.HTML
	s.patchFailed = st.PatchFailed
	s.preset = st.Preset
	s.updatedAt = st.UpdatedAt
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// TemplateID returns the stored template this session edits, if any.
func (s *Session) TemplateID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templateID
}

// AttachTemplate links an unsaved session to a newly stored template so
// later autosaves land on it.
func (s *Session) AttachTemplate(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templateID = id
}

// Data returns a copy of the current listing data.
func (s *Session) Data() models.TemplateData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// HTML returns the last generated document.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html
}

// PatchFailed reports whether the last regeneration fell back to the
// previous document.
func (s *Session) PatchFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patchFailed
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		ID:          s.id,
		TemplateID:  s.templateID,
		Data:        s.data.Clone(),
		HTML:        s.html,
		PatchFailed: s.patchFailed,
		Preset:      s.preset,
		UpdatedAt:   s.updatedAt,
	}
}

// Load parses a listing document into the session and regenerates it.
// Load does not schedule an autosave.
func (s *Session) Load(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = parser.Parse(html)
	s.regenerate()
}

// Blank resets the session to an empty fresh document.
func (s *Session) Blank() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = parser.Default()
	s.regenerate()
}

// edit runs fn under the lock and, when it succeeds, regenerates the
// document and schedules an autosave.
func (s *Session) edit(fn func(d *models.TemplateData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.data); err != nil {
		return err
	}
	s.regenerate()
	s.scheduleAutosave()
	return nil
}

// regenerate rebuilds the document. In patch mode the new document
// becomes the base for the next edit unless patching failed.
func (s *Session) regenerate() {
	pal := generator.ResolvePalette(s.data, s.preset)
	html, report := generator.GenerateWith(s.data, pal)
	s.html = html
	s.patchFailed = report.PatchFailed
	if report.Mode == generator.ModePatch && !report.PatchFailed {
		s.data.RawHTML = html
	}
	s.updatedAt = time.Now()
}

// SetTitle replaces the listing title.
func (s *Session) SetTitle(title string) error {
	return s.edit(func(d *models.TemplateData) error {
		d.Title = title
		return nil
	})
}

// SetSubtitle replaces the subtitle line.
func (s *Session) SetSubtitle(subtitle string) error {
	return s.edit(func(d *models.TemplateData) error {
		d.Subtitle = subtitle
		return nil
	})
}

// SetPrice sets the price and, when code is non-empty, the currency.
func (s *Session) SetPrice(price, code string) error {
	return s.edit(func(d *models.TemplateData) error {
		d.Price = price
		if code != "" {
			d.Currency = code
		}
		return nil
	})
}

// SetDescription replaces the description with a sanitized HTML fragment.
func (s *Session) SetDescription(html string) error {
	return s.edit(func(d *models.TemplateData) error {
		d.Description = sanitize.Fragment(html)
		return nil
	})
}

// SetDescriptionMarkdown renders Markdown and stores it as the description.
func (s *Session) SetDescriptionMarkdown(src string) error {
	html, err := markdown.ToHTML(src)
	if err != nil {
		return fmt.Errorf("render description markdown: %w", err)
	}
	return s.SetDescription(html)
}

// SetLogo sets the logo to an image URL or inline SVG.
func (s *Session) SetLogo(logo string) error {
	return s.edit(func(d *models.TemplateData) error {
		d.Logo = sanitize.Logo(logo)
		return nil
	})
}

// AddImage appends an image and returns its id.
func (s *Session) AddImage(url, alt string) (string, error) {
	clean := sanitize.URL(url)
	if clean == "" {
		return "", ErrInvalidURL
	}
	id := models.NewItemID()
	err := s.edit(func(d *models.TemplateData) error {
		d.Images = append(d.Images, models.ImageItem{ID: id, URL: clean, Alt: alt})
		return nil
	})
	return id, err
}

// UpdateImage changes an image's URL and alt text.
func (s *Session) UpdateImage(id, url, alt string) error {
	clean := sanitize.URL(url)
	if clean == "" {
		return ErrInvalidURL
	}
	return s.edit(func(d *models.TemplateData) error {
		i := imageIndex(d.Images, id)
		if i < 0 {
			return ErrItemNotFound
		}
		d.Images[i].URL, d.Images[i].Alt = clean, alt
		return nil
	})
}

// RemoveImage drops an image.
func (s *Session) RemoveImage(id string) error {
	return s.edit(func(d *models.TemplateData) error {
		i := imageIndex(d.Images, id)
		if i < 0 {
			return ErrItemNotFound
		}
		d.Images = append(d.Images[:i], d.Images[i+1:]...)
		return nil
	})
}

// MoveImage moves an image to position to, clamped to the list bounds.
func (s *Session) MoveImage(id string, to int) error {
	return s.edit(func(d *models.TemplateData) error {
		i := imageIndex(d.Images, id)
		if i < 0 {
			return ErrItemNotFound
		}
		to = max(0, min(to, len(d.Images)-1))
		img := d.Images[i]
		d.Images = append(d.Images[:i], d.Images[i+1:]...)
		d.Images = append(d.Images[:to], append([]models.ImageItem{img}, d.Images[to:]...)...)
		return nil
	})
}

// AddSpec appends a specification row and returns its id.
func (s *Session) AddSpec(label, value string) (string, error) {
	id := models.NewItemID()
	err := s.edit(func(d *models.TemplateData) error {
		d.Specs = append(d.Specs, models.SpecItem{ID: id, Label: label, Value: value})
		return nil
	})
	return id, err
}

// UpdateSpec changes a specification row.
func (s *Session) UpdateSpec(id, label, value string) error {
	return s.edit(func(d *models.TemplateData) error {
		for i := range d.Specs {
			if d.Specs[i].ID == id {
				d.Specs[i].Label, d.Specs[i].Value = label, value
				return nil
			}
		}
		return ErrItemNotFound
	})
}

// RemoveSpec drops a specification row.
func (s *Session) RemoveSpec(id string) error {
	return s.edit(func(d *models.TemplateData) error {
		for i := range d.Specs {
			if d.Specs[i].ID == id {
				d.Specs = append(d.Specs[:i], d.Specs[i+1:]...)
				return nil
			}
		}
		return ErrItemNotFound
	})
}

// UpdateCompanySection rewrites one trust card. An empty svg keeps the
// current icon.
func (s *Session) UpdateCompanySection(id, title, description, svg string) error {
	return s.edit(func(d *models.TemplateData) error {
		for i := range d.CompanyInfo {
			c := &d.CompanyInfo[i]
			if c.ID != id {
				continue
			}
			c.Title, c.Description = title, description
			if svg != "" {
				c.SVG = sanitize.Icon(svg)
			}
			return nil
		}
		return ErrItemNotFound
	})
}

func imageIndex(images []models.ImageItem, id string) int {
	for i := range images {
		if images[i].ID == id {
			return i
		}
	}
	return -1
}

// scheduleAutosave restarts the debounce timer. Callers hold s.mu.
func (s *Session) scheduleAutosave() {
	if s.autosave == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending++
	gen := s.pending
	s.timer = time.AfterFunc(s.debounce, func() { s.fireAutosave(gen) })
}

func (s *Session) fireAutosave(gen uint64) {
	s.mu.Lock()
	if gen != s.pending || s.autosave == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	st := s.stateLocked()
	save := s.autosave
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()
	if err := save(ctx, st); err != nil {
		slog.Warn("editor autosave failed", "session", st.ID, "error", err)
	}
}

// Flush runs a pending autosave immediately. Without one it does nothing.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return nil
	}
	s.timer.Stop()
	s.timer = nil
	s.pending++
	st := s.stateLocked()
	save := s.autosave
	s.mu.Unlock()

	if save == nil {
		return nil
	}
	return save(ctx, st)
}

// Close cancels any pending autosave without saving.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending++
}
