package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	availabilityRepo "residora/database/repository/availability"
	bookingRepo "residora/database/repository/booking"
	providerRepo "residora/database/repository/provider"
)

// dateLayout is the calendar-date format used on the wire and in the ledger.
const dateLayout = "2006-01-02"

// Engine resolves bookable slots and admits bookings against them. It owns no
// state of its own; everything flows through the injected repositories.
type Engine struct {
	Providers providerRepo.ProviderRepository
	Windows   availabilityRepo.AvailabilityRepository
	Ledger    bookingRepo.BookingRepository

	// DefaultIntervalMin is applied to windows that carry no interval of
	// their own. Zero falls back to 60.
	DefaultIntervalMin int

	// Now is swappable for tests. Nil means time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.L()
}

func (e *Engine) interval(w int) int {
	if w > 0 {
		return w
	}
	if e.DefaultIntervalMin > 0 {
		return e.DefaultIntervalMin
	}
	return 60
}

// parseDate anchors the calendar date in UTC so the derived weekday is the
// same no matter which timezone the process runs in.
func parseDate(date string) (time.Time, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidRequest, date)
	}
	return day, nil
}

// GetAvailableSlots returns the ordered open "HH:MM" slots for a provider on
// a calendar date: the recurring window for that weekday, expanded to slots,
// minus every slot held by a PENDING or CONFIRMED booking. A day with no
// window resolves to an empty list, not an error.
func (e *Engine) GetAvailableSlots(ctx context.Context, providerID, date string) ([]string, error) {
	if _, err := e.Providers.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	window, err := e.Windows.GetByProviderAndWeekday(ctx, providerID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if window == nil {
		return []string{}, nil
	}

	candidates := SlotsForWindow(window.Start, window.End, e.interval(window.IntervalMin))
	if len(candidates) == 0 {
		e.logger().Warn("availability window expands to zero slots",
			zap.String("providerID", providerID),
			zap.Int("weekday", window.Weekday),
			zap.String("start", window.Start),
			zap.String("end", window.End))
		return []string{}, nil
	}

	active, err := e.Ledger.ListActiveByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]struct{}, len(active))
	for _, b := range active {
		occupied[b.Slot] = struct{}{}
	}

	open := make([]string, 0, len(candidates))
	for _, s := range candidates {
		if _, taken := occupied[s]; !taken {
			open = append(open, s)
		}
	}
	return open, nil
}
