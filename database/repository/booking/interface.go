package bookingRepo

import (
	"context"
	"errors"

	"residora/models"
)

// ErrDuplicateActiveSlot is returned by Insert when another PENDING or CONFIRMED
// booking already occupies the same (provider, date, slot) tuple. The partial
// unique index on the bookings collection enforces this at the storage layer, so
// concurrent inserts cannot both succeed.
var ErrDuplicateActiveSlot = errors.New("slot already occupied by an active booking")

// ErrBookingNotFound is returned when no booking matches the given identifier.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository is the booking ledger: the source of truth for slot occupancy.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListActiveByProviderAndDate returns PENDING and CONFIRMED bookings only;
	// these are the bookings that occupy slots.
	ListActiveByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	ListByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// UpdateStatus transitions a booking from one status to another. It fails with
	// ErrBookingNotFound if the booking is missing or not currently in from.
	UpdateStatus(ctx context.Context, id, from, to string) error
	SetPayment(ctx context.Context, id string, payment *models.PaymentRecord) error
}
