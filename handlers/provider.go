package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"residora/models"
	"residora/services/provider"
)

// ProviderHandler exposes provider account, catalogue and availability
// management endpoints.
type ProviderHandler struct {
	Svc provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Svc: svc}
}

// Register creates a provider account.
// POST /api/providers/register
func (h *ProviderHandler) Register(c *gin.Context) {
	var reg models.ProviderRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.Register(c.Request.Context(), reg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login signs a provider in.
// POST /api/providers/login
func (h *ProviderHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.Authenticate(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the provider's tokens.
// POST /api/provider/logout
func (h *ProviderHandler) Logout(c *gin.Context) {
	if err := h.Svc.RevokeAuthToken(c.Request.Context(), c.GetString("providerID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// List returns active providers for browsing.
// GET /api/providers?limit=20
func (h *ProviderHandler) List(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	providers, err := h.Svc.ListProviders(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// Get returns one provider's public profile and catalogue.
// GET /api/providers/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SetAvailability sets one weekday's recurring window for the authenticated
// provider, replacing any prior window on that weekday.
// PUT /api/provider/availability
func (h *ProviderHandler) SetAvailability(c *gin.Context) {
	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	window, err := h.Svc.SetAvailability(c.Request.Context(), c.GetString("providerID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, window)
}

// RemoveAvailability closes a weekday.
// DELETE /api/provider/availability/:weekday
func (h *ProviderHandler) RemoveAvailability(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be a number"})
		return
	}
	if err := h.Svc.RemoveAvailability(c.Request.Context(), c.GetString("providerID"), weekday); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListAvailability returns the authenticated provider's weekly windows.
// GET /api/provider/availability
func (h *ProviderHandler) ListAvailability(c *gin.Context) {
	windows, err := h.Svc.ListAvailability(c.Request.Context(), c.GetString("providerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": windows})
}

// AddService adds a catalogue entry for the authenticated provider.
// POST /api/provider/services
func (h *ProviderHandler) AddService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.AddService(c.Request.Context(), c.GetString("providerID"), svc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateService replaces a catalogue entry in place.
// PUT /api/provider/services/:id
func (h *ProviderHandler) UpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc.ID = c.Param("id")

	if err := h.Svc.UpdateService(c.Request.Context(), c.GetString("providerID"), svc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// SetServiceEnabled toggles whether a service can be booked.
// PATCH /api/provider/services/:id/enabled
func (h *ProviderHandler) SetServiceEnabled(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.SetServiceEnabled(c.Request.Context(), c.GetString("providerID"), c.Param("id"), *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
