package booking

import (
	"context"
	"time"

	"residora/models"
)

// BookingService is the customer-facing booking lifecycle: admission with
// payment collection, cancellation with refund, confirmation from the
// payment processor, and expiry of abandoned holds.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, req models.CreateBookingRequest) (*models.BookingResponse, error)
	GetBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, providerID, date string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, paymentIntentID string) error
	ExpirePendingBooking(ctx context.Context, bookingID string) error
}

// ExpiryScheduler queues a deferred expiry for a PENDING booking. The worker
// side lives in the cron package; this interface keeps the dependency one-way.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, after time.Duration) error
}

// SlotCacheInvalidator drops cached availability for a provider-date after a
// booking write changes its occupancy. Implemented by utils.SlotsCache.
type SlotCacheInvalidator interface {
	InvalidateSlots(ctx context.Context, providerID, date string)
}
