package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"residora/models"
	"residora/services/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// Create admits a booking for the authenticated customer.
// POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Svc.CreateBooking(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get returns one booking, visible only to its customer or provider.
// GET /api/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	callerID := c.GetString("userID")
	if callerID == "" {
		callerID = c.GetString("providerID")
	}
	b, err := h.Svc.GetBooking(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMine returns the authenticated customer's bookings, newest first.
// GET /api/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.Svc.ListCustomerBookings(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListForProvider returns the authenticated provider's bookings on a date.
// GET /api/provider/bookings?date=YYYY-MM-DD
func (h *BookingHandler) ListForProvider(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	bookings, err := h.Svc.ListProviderBookings(c.Request.Context(), c.GetString("providerID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Cancel cancels a booking on behalf of its customer or provider.
// DELETE /api/bookings/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	callerID := c.GetString("userID")
	if callerID == "" {
		callerID = c.GetString("providerID")
	}
	b, err := h.Svc.CancelBooking(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Confirm marks a booking paid. Driven by the payment processor's callback.
// POST /api/payments/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	var req struct {
		BookingID       string `json:"bookingId" binding:"required"`
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.ConfirmBooking(c.Request.Context(), req.BookingID, req.PaymentIntentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}
