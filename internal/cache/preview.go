// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// preview.go caches generated preview documents in Valkey. Entries are
// keyed by template id and version, so saving a new version makes the old
// entry unreachable; InvalidateTemplate drops every version at once.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// previewKeyPrefix is the Valkey key prefix for cached previews.
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long a rendered preview stays cached.
	DefaultPreviewTTL = 10 * time.Minute
)

// PreviewCache manages generated preview HTML in Valkey.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewCache creates a preview cache backed by the given Valkey client.
func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// PreviewKey returns the cache key for one version of a template.
func PreviewKey(templateID uuid.UUID, version int) string {
	return fmt.Sprintf("%s%s:%d", previewKeyPrefix, templateID, version)
}

// Get retrieves a cached preview. The bool is false on a miss or error.
func (pc *PreviewCache) Get(ctx context.Context, templateID uuid.UUID, version int) ([]byte, bool) {
	key := PreviewKey(templateID, version)
	val, err := pc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("preview cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("preview cache hit", "key", key)
	return val, true
}

// Set stores a rendered preview with the configured TTL.
func (pc *PreviewCache) Set(ctx context.Context, templateID uuid.UUID, version int, html []byte) {
	key := PreviewKey(templateID, version)
	if err := pc.client.Set(ctx, key, html, pc.ttl).Err(); err != nil {
		slog.Warn("preview cache set error", "key", key, "error", err)
	}
}

// InvalidateTemplate removes every cached version of a template.
func (pc *PreviewCache) InvalidateTemplate(ctx context.Context, templateID uuid.UUID) {
	pattern := fmt.Sprintf("%s%s:*", previewKeyPrefix, templateID)
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("preview cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("preview cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("preview cache invalidated", "template", templateID, "deleted", deleted)
	}
}
