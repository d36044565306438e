// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long an idle session survives in Valkey.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces editor session keys in Valkey.
	keyPrefix = "editor:"
)

// Store persists session state in Valkey as JSON so a session survives
// between HTTP calls and process restarts.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: DefaultTTL}
}

// Save writes the state and resets its TTL.
func (s *Store) Save(ctx context.Context, st State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("editor session marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+st.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("editor session store: %w", err)
	}
	return nil
}

// Load reads a session's state. Returns nil if it does not exist.
func (s *Store) Load(ctx context.Context, id string) (*State, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("editor session get: %w", err)
	}

	var st State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("editor session unmarshal: %w", err)
	}
	return &st, nil
}

// Delete removes a session's state.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("editor session delete: %w", err)
	}
	return nil
}
