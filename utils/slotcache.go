package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotsCachePrefix namespaces resolved availability entries in redis.
const SlotsCachePrefix = "slots:"

// SlotsCache is a short-TTL read cache for resolved availability, keyed by
// provider and date. Booking writes drop the exact entry; availability window
// edits are only covered by the TTL, so keep it short.
type SlotsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSlotsCache(client *redis.Client, ttl time.Duration) *SlotsCache {
	return &SlotsCache{Client: client, TTL: ttl}
}

func slotsCacheKey(providerID, date string) string {
	return SlotsCachePrefix + providerID + ":" + date
}

// Get returns the cached slot list. Any cache error counts as a miss.
func (c *SlotsCache) Get(ctx context.Context, providerID, date string) ([]string, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, slotsCacheKey(providerID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotsCache) Set(ctx context.Context, providerID, date string, slots []string) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, slotsCacheKey(providerID, date), raw, c.TTL).Err(); err != nil {
		GetLogger().Warn("Failed to cache resolved slots", zap.Error(err))
	}
}

// InvalidateSlots drops the cached entry after a booking write changes the
// occupancy for that provider-date.
func (c *SlotsCache) InvalidateSlots(ctx context.Context, providerID, date string) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, slotsCacheKey(providerID, date)).Err(); err != nil {
		GetLogger().Warn("Failed to invalidate slots cache", zap.Error(err))
	}
}
