package scheduling

import "errors"

var (
	// ErrUnauthorized signals a mutating call without an authenticated caller.
	ErrUnauthorized = errors.New("caller is not authenticated")

	// ErrProviderNotFound signals the referenced provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidRequest covers malformed dates, unknown or disabled services and
	// off-grid slots. Wrap it with detail: fmt.Errorf("%w: ...", ErrInvalidRequest).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSlotConflict signals the requested slot is occupied by another PENDING
	// or CONFIRMED booking. Clients should re-fetch availability and pick another
	// slot rather than retry the same one.
	ErrSlotConflict = errors.New("slot already booked")
)
