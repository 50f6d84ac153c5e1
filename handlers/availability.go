package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"residora/services/scheduling"
	"residora/utils"
)

// AvailabilityHandler exposes slot resolution to customers. Resolved slots
// are cached briefly; booking writes invalidate the affected entry.
type AvailabilityHandler struct {
	Engine *scheduling.Engine
	Cache  *utils.SlotsCache
}

func NewAvailabilityHandler(engine *scheduling.Engine, cache *utils.SlotsCache) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Cache: cache}
}

// GetSlots returns the open slots for a provider on a date.
// GET /api/providers/:id/slots?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	ctx := c.Request.Context()

	if slots, ok := h.Cache.Get(ctx, providerID, date); ok {
		c.JSON(http.StatusOK, gin.H{
			"providerId": providerID,
			"date":       date,
			"slots":      slots,
		})
		return
	}

	slots, err := h.Engine.GetAvailableSlots(ctx, providerID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Cache.Set(ctx, providerID, date, slots)

	c.JSON(http.StatusOK, gin.H{
		"providerId": providerID,
		"date":       date,
		"slots":      slots,
	})
}
