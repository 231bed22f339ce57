package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

const contentTTL = time.Hour

// ContentCache caches parsed CSV payloads in Redis.
// Key format: csvcontent:<file_id>
type ContentCache struct {
	client *redis.Client
}

// NewContentCache creates a ContentCache wrapping the given Redis client.
func NewContentCache(client *redis.Client) *ContentCache {
	return &ContentCache{client: client}
}

// Get returns the cached payload for fileID, or (nil, nil) on a miss.
func (c *ContentCache) Get(ctx context.Context, fileID string) (*domain.FileContent, error) {
	raw, err := c.client.Get(ctx, c.key(fileID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content cache get: %w", err)
	}

	var content domain.FileContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("content cache decode: %w", err)
	}
	return &content, nil
}

// Set stores the payload for fileID (expires after contentTTL).
func (c *ContentCache) Set(ctx context.Context, fileID string, content *domain.FileContent) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("content cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(fileID), raw, contentTTL).Err()
}

// Delete drops the cache entry for fileID. Deleting an absent key is a no-op.
func (c *ContentCache) Delete(ctx context.Context, fileID string) error {
	return c.client.Del(ctx, c.key(fileID)).Err()
}

func (c *ContentCache) key(fileID string) string {
	return fmt.Sprintf("csvcontent:%s", fileID)
}
