package profilepictures

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

const defaultCacheTTL = time.Hour

// Cache keeps the active picture per user in Redis so profile lookups skip
// the database. Cache errors degrade to a repo read, never a failure.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps an existing Redis client. A nil client yields a nil Cache,
// which every method tolerates.
func NewCache(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: defaultCacheTTL}
}

func cacheKey(userID string) string {
	return "housesync:active_picture:" + userID
}

// Get returns the cached active picture, if present.
func (c *Cache) Get(ctx context.Context, userID string) (ProfilePicture, bool) {
	if c == nil {
		return ProfilePicture{}, false
	}
	payload, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			telemetry.Error("profilepictures.cache.get_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return ProfilePicture{}, false
	}
	var pic ProfilePicture
	if err := json.Unmarshal(payload, &pic); err != nil {
		return ProfilePicture{}, false
	}
	return pic, true
}

// Set stores the active picture with the cache TTL.
func (c *Cache) Set(ctx context.Context, pic ProfilePicture) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(pic)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(pic.UserID), payload, c.ttl).Err(); err != nil {
		telemetry.Error("profilepictures.cache.set_failed", map[string]any{
			"user_id": pic.UserID,
			"error":   err.Error(),
		})
	}
}

// Invalidate drops the cached entry for a user.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
		telemetry.Error("profilepictures.cache.invalidate_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
