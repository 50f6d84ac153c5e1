package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "residora/database/repository/booking"
	productRepo "residora/database/repository/product"
	providerRepo "residora/database/repository/provider"
	userRepo "residora/database/repository/user"
	"residora/services/payment"
	"residora/services/scheduling"
)

// respondError maps service errors onto HTTP statuses. Unrecognized errors
// become 500s with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
	case errors.Is(err, scheduling.ErrProviderNotFound),
		errors.Is(err, providerRepo.ErrProviderNotFound),
		errors.Is(err, userRepo.ErrUserNotFound),
		errors.Is(err, bookingRepo.ErrBookingNotFound),
		errors.Is(err, productRepo.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, scheduling.ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, scheduling.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, payment.ErrRefundFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "refund failed, booking unchanged"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
