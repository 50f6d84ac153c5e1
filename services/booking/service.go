package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingRepo "residora/database/repository/booking"
	providerRepo "residora/database/repository/provider"
	userRepo "residora/database/repository/user"
	"residora/models"
	"residora/services/payment"
	"residora/services/scheduling"
	"residora/utils"
)

const (
	paymentCreated  = "created"
	paymentPaid     = "paid"
	paymentRefunded = "refunded"
)

// DefaultBookingService wires the scheduling engine, the booking ledger and
// the payment processor into the booking lifecycle.
type DefaultBookingService struct {
	Engine    *scheduling.Engine
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Users     userRepo.UserRepository
	Payments  payment.Handler
	Expiry    ExpiryScheduler
	SlotCache SlotCacheInvalidator

	// PendingTTL is how long a PENDING booking may hold its slot before the
	// expiry worker releases it.
	PendingTTL time.Duration

	SuccessURL string
	CancelURL  string
}

var _ BookingService = (*DefaultBookingService)(nil)

// CreateBooking admits a PENDING booking for the slot, opens a checkout
// session for its total, and schedules the expiry that frees the slot if the
// customer never pays. If the checkout session cannot be created the freshly
// admitted booking is cancelled again so the slot is not held for a payment
// that can never arrive.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	logger := utils.GetLogger()

	booking, err := s.Engine.AdmitBooking(ctx, scheduling.AdmissionRequest{
		ProviderID: req.ProviderID,
		CustomerID: customerID,
		Date:       req.Date,
		Slot:       req.Slot,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		return nil, err
	}
	s.invalidateSlots(ctx, booking.ProviderID, booking.Date)

	provider, err := s.Providers.GetByID(ctx, booking.ProviderID)
	if err != nil {
		s.releaseSlot(ctx, booking)
		return nil, err
	}

	customerEmail := ""
	if user, err := s.Users.GetByID(ctx, customerID); err == nil {
		customerEmail = user.Email
	}

	items := make([]payment.CheckoutItem, len(booking.Items))
	for i, it := range booking.Items {
		items[i] = payment.CheckoutItem{Name: it.Name, Amount: it.Price}
	}
	session, err := s.Payments.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ReferenceID:     booking.ID,
		CustomerEmail:   customerEmail,
		Currency:        provider.Currency,
		Items:           items,
		PayoutAccountID: provider.PayoutAccountID,
		SuccessURL:      s.SuccessURL,
		CancelURL:       s.CancelURL,
	})
	if err != nil {
		s.releaseSlot(ctx, booking)
		return nil, fmt.Errorf("failed to start payment for booking %s: %w", booking.ID, err)
	}

	record := &models.PaymentRecord{
		CheckoutSessionID: session.ID,
		Amount:            session.TotalAmount,
		PlatformFee:       session.PlatformFee,
		Currency:          provider.Currency,
		Status:            paymentCreated,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.Bookings.SetPayment(ctx, booking.ID, record); err != nil {
		logger.Error("failed to attach payment record",
			zap.String("bookingID", booking.ID), zap.Error(err))
	} else {
		booking.Payment = record
	}

	if s.Expiry != nil {
		if err := s.Expiry.ScheduleExpiry(ctx, booking.ID, s.PendingTTL); err != nil {
			// The booking stands; an unexpired hold is recoverable by hand,
			// a rejected customer is not.
			logger.Error("failed to schedule booking expiry",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	return &models.BookingResponse{Booking: booking, CheckoutURL: session.URL}, nil
}

// releaseSlot compensates a failed creation by cancelling the PENDING hold.
func (s *DefaultBookingService) releaseSlot(ctx context.Context, booking *models.Booking) {
	if err := s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingPending, models.BookingCancelled); err != nil {
		utils.GetLogger().Error("failed to release slot after aborted creation",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	s.invalidateSlots(ctx, booking.ProviderID, booking.Date)
}

func (s *DefaultBookingService) invalidateSlots(ctx context.Context, providerID, date string) {
	if s.SlotCache != nil {
		s.SlotCache.InvalidateSlots(ctx, providerID, date)
	}
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if callerID != booking.CustomerID && callerID != booking.ProviderID {
		return nil, scheduling.ErrUnauthorized
	}
	return booking, nil
}

func (s *DefaultBookingService) ListCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	return s.Bookings.ListByProviderAndDate(ctx, providerID, date)
}

// CancelBooking cancels an active booking on behalf of its customer or
// provider. A paid booking is refunded first; if the refund fails the booking
// keeps its current status and the slot stays occupied, so money is never
// kept for a freed slot.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if callerID != booking.CustomerID && callerID != booking.ProviderID {
		return nil, scheduling.ErrUnauthorized
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		return nil, fmt.Errorf("%w: booking is already %s", scheduling.ErrInvalidRequest, booking.Status)
	}

	if booking.Payment != nil && booking.Payment.Status == paymentPaid {
		if err := s.Payments.Refund(ctx, booking.Payment.PaymentIntentID); err != nil {
			logger.Error("refund failed, booking left untouched",
				zap.String("bookingID", bookingID), zap.Error(err))
			return nil, err
		}
		booking.Payment.Status = paymentRefunded
		if err := s.Bookings.SetPayment(ctx, bookingID, booking.Payment); err != nil {
			logger.Error("failed to record refund",
				zap.String("bookingID", bookingID), zap.Error(err))
		}
	}

	if err := s.Bookings.UpdateStatus(ctx, bookingID, booking.Status, models.BookingCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.BookingCancelled
	s.invalidateSlots(ctx, booking.ProviderID, booking.Date)

	logger.Info("booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("by", callerID))
	return booking, nil
}

// ConfirmBooking transitions a PENDING booking to CONFIRMED once its payment
// settles. It is driven by the payment processor, not by customers.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, bookingID, paymentIntentID string) error {
	if err := s.Bookings.UpdateStatus(ctx, bookingID, models.BookingPending, models.BookingConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: booking %s is not awaiting confirmation", scheduling.ErrInvalidRequest, bookingID)
		}
		return err
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	record := booking.Payment
	if record == nil {
		record = &models.PaymentRecord{CreatedAt: time.Now().UTC()}
	}
	record.PaymentIntentID = paymentIntentID
	record.Status = paymentPaid
	if err := s.Bookings.SetPayment(ctx, bookingID, record); err != nil {
		return err
	}

	utils.GetLogger().Info("booking confirmed",
		zap.String("bookingID", bookingID),
		zap.String("paymentIntentID", paymentIntentID))
	return nil
}

// ExpirePendingBooking releases the slot held by a PENDING booking whose
// payment never arrived. Bookings that were confirmed or cancelled in the
// meantime are left alone, so the expiry task is safe to deliver late or
// more than once.
func (s *DefaultBookingService) ExpirePendingBooking(ctx context.Context, bookingID string) error {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = s.Bookings.UpdateStatus(ctx, bookingID, models.BookingPending, models.BookingCancelled)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.invalidateSlots(ctx, booking.ProviderID, booking.Date)
	utils.GetLogger().Info("pending booking expired", zap.String("bookingID", bookingID))
	return nil
}
