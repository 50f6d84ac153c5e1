package scheduling

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "residora/database/repository/booking"
	providerRepo "residora/database/repository/provider"
	"residora/models"
)

// AdmissionRequest carries everything needed to admit a booking. CustomerID
// comes from the authenticated session, never from the request body.
type AdmissionRequest struct {
	ProviderID string
	CustomerID string
	Date       string
	Slot       string
	ServiceIDs []string
}

// AdmitBooking validates the request, prices it from the provider's own
// catalogue, and inserts a PENDING booking. The slot is re-checked against
// live availability immediately before insert, and the ledger's uniqueness
// constraint backstops the race between that check and the write: a loser of
// the race surfaces as ErrSlotConflict, never as a double booking.
func (e *Engine) AdmitBooking(ctx context.Context, req AdmissionRequest) (*models.Booking, error) {
	if req.CustomerID == "" {
		return nil, ErrUnauthorized
	}

	provider, err := e.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	items, total, err := priceServices(provider, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	today := e.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, fmt.Errorf("%w: date %s is in the past", ErrInvalidRequest, req.Date)
	}

	window, err := e.Windows.GetByProviderAndWeekday(ctx, req.ProviderID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, fmt.Errorf("%w: provider has no availability on %s", ErrInvalidRequest, day.Weekday())
	}
	candidates := SlotsForWindow(window.Start, window.End, e.interval(window.IntervalMin))
	if !contains(candidates, req.Slot) {
		return nil, fmt.Errorf("%w: slot %s is not offered on %s", ErrInvalidRequest, req.Slot, day.Weekday())
	}

	active, err := e.Ledger.ListActiveByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		return nil, err
	}
	for _, b := range active {
		if b.Slot == req.Slot {
			return nil, ErrSlotConflict
		}
	}

	now := e.now().UTC()
	booking := &models.Booking{
		ID:         uuid.NewString(),
		ProviderID: req.ProviderID,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Slot:       req.Slot,
		Status:     models.BookingPending,
		TotalPrice: total,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := e.Ledger.Insert(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateActiveSlot) {
			e.logger().Info("booking lost slot race",
				zap.String("providerID", req.ProviderID),
				zap.String("date", req.Date),
				zap.String("slot", req.Slot))
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	e.logger().Info("booking admitted",
		zap.String("bookingID", booking.ID),
		zap.String("providerID", booking.ProviderID),
		zap.String("date", booking.Date),
		zap.String("slot", booking.Slot),
		zap.Float64("total", booking.TotalPrice))
	return booking, nil
}

// priceServices resolves the requested service IDs against the provider's
// catalogue and sums their current prices. Prices always come from storage,
// so a tampered request body cannot discount a booking.
func priceServices(provider *models.Provider, serviceIDs []string) ([]models.BookingItem, float64, error) {
	if len(serviceIDs) == 0 {
		return nil, 0, fmt.Errorf("%w: at least one service is required", ErrInvalidRequest)
	}

	catalogue := make(map[string]models.Service, len(provider.Services))
	for _, s := range provider.Services {
		catalogue[s.ID] = s
	}

	items := make([]models.BookingItem, 0, len(serviceIDs))
	seen := make(map[string]struct{}, len(serviceIDs))
	var total float64
	for _, id := range serviceIDs {
		if _, dup := seen[id]; dup {
			return nil, 0, fmt.Errorf("%w: duplicate service %s", ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}

		svc, ok := catalogue[id]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown service %s", ErrInvalidRequest, id)
		}
		if !svc.Enabled {
			return nil, 0, fmt.Errorf("%w: service %s is not currently offered", ErrInvalidRequest, id)
		}
		items = append(items, models.BookingItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.Price,
		})
		total += svc.Price
	}
	return items, math.Round(total*100) / 100, nil
}

func contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
