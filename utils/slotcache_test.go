package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotsCacheWithoutClientIsInert(t *testing.T) {
	ctx := context.Background()

	var nilCache *SlotsCache
	slots, ok := nilCache.Get(ctx, "prov-1", "2026-01-05")
	assert.False(t, ok)
	assert.Nil(t, slots)
	nilCache.Set(ctx, "prov-1", "2026-01-05", []string{"09:00"})
	nilCache.InvalidateSlots(ctx, "prov-1", "2026-01-05")

	empty := &SlotsCache{}
	_, ok = empty.Get(ctx, "prov-1", "2026-01-05")
	assert.False(t, ok)
	empty.Set(ctx, "prov-1", "2026-01-05", nil)
	empty.InvalidateSlots(ctx, "prov-1", "2026-01-05")
}
