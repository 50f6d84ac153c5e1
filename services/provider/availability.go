package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"residora/models"
	"residora/services/scheduling"
	"residora/utils"
)

// SetAvailability validates and stores one weekday's recurring window,
// replacing any window already on that weekday. A window that would expand
// to zero slots is rejected here rather than left to surface as an empty day.
func (s *DefaultProviderService) SetAvailability(ctx context.Context, providerID string, req models.SetAvailabilityRequest) (*models.AvailabilityWindow, error) {
	if req.Weekday == nil || *req.Weekday < 0 || *req.Weekday > 6 {
		return nil, fmt.Errorf("weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	startMin, err := scheduling.ParseClock(req.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endMin, err := scheduling.ParseClock(req.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("start time must be before end time")
	}
	if req.IntervalMin < 0 {
		return nil, fmt.Errorf("interval must not be negative; omit or set 0 to use the default")
	}

	window := models.AvailabilityWindow{
		ProviderID:  providerID,
		Weekday:     *req.Weekday,
		Start:       req.Start,
		End:         req.End,
		IntervalMin: req.IntervalMin,
	}
	if err := s.Windows.Upsert(ctx, window); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("availability window set",
		zap.String("providerID", providerID),
		zap.Int("weekday", window.Weekday),
		zap.String("start", window.Start),
		zap.String("end", window.End))
	return &window, nil
}

// RemoveAvailability closes a weekday. Existing bookings on that weekday are
// untouched; only future availability disappears.
func (s *DefaultProviderService) RemoveAvailability(ctx context.Context, providerID string, weekday int) error {
	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	return s.Windows.Delete(ctx, providerID, weekday)
}

func (s *DefaultProviderService) ListAvailability(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	return s.Windows.ListByProvider(ctx, providerID)
}
