// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"listingeditor/internal/models"
)

// idLength is the byte length of a random session id (16 bytes = 32 hex chars).
const idLength = 16

// Manager keeps live sessions in memory and mirrors their state to the
// Valkey store after every change. A session missing from memory, for
// example after a restart, is restored from the store on first access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    *Store // nil keeps sessions in memory only
	autosave AutosaveFunc
	debounce time.Duration
}

// NewManager creates a session manager. store may be nil.
func NewManager(store *Store, autosave AutosaveFunc, debounce time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		autosave: autosave,
		debounce: debounce,
	}
}

func (m *Manager) options(templateID uuid.UUID, preset *models.StylePreset) Options {
	return Options{
		TemplateID: templateID,
		Preset:     preset,
		Autosave:   m.autosave,
		Debounce:   m.debounce,
	}
}

// Create opens a new session. An empty html starts a blank fresh document.
func (m *Manager) Create(ctx context.Context, templateID uuid.UUID, html string, preset *models.StylePreset) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("editor session create: %w", err)
	}

	s := NewSession(id, m.options(templateID, preset))
	if html == "" {
		s.Blank()
	} else {
		s.Load(html)
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	if err := m.Save(ctx, s); err != nil {
		return nil, err
	}
	slog.Info("editor session opened", "session", id, "template", templateID)
	return s, nil
}

// Get returns a live session, restoring it from the store if needed.
// Returns nil if the session does not exist.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		return s, nil
	}
	if m.store == nil {
		return nil, nil
	}

	st, err := m.store.Load(ctx, id)
	if err != nil || st == nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s = restore(*st, m.options(st.TemplateID, st.Preset))
	m.sessions[id] = s
	return s, nil
}

// Save mirrors a session's state to the store.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if m.store == nil {
		return nil
	}
	return m.store.Save(ctx, s.State())
}

// Discard closes a session and forgets it. A pending autosave is dropped.
func (m *Manager) Discard(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
	if m.store == nil {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// FlushAll runs pending autosaves and persists every live session. Used on shutdown.
func (m *Manager) FlushAll(ctx context.Context) {
	m.mu.Lock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.Unlock()

	for _, s := range live {
		if err := s.Flush(ctx); err != nil {
			slog.Warn("editor session flush failed", "session", s.ID(), "error", err)
		}
		if err := m.Save(ctx, s); err != nil {
			slog.Warn("editor session save failed", "session", s.ID(), "error", err)
		}
	}
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
