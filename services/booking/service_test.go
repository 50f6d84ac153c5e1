package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "residora/database/repository/booking"
	providerRepo "residora/database/repository/provider"
	userRepo "residora/database/repository/user"
	"residora/models"
	"residora/services/payment"
	"residora/services/scheduling"
)

// --- fakes ---

type memBookings struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: make(map[string]*models.Booking)}
}

func active(status string) bool {
	return status == models.BookingPending || status == models.BookingConfirmed
}

func (m *memBookings) Insert(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bookings {
		if active(existing.Status) && existing.ProviderID == b.ProviderID &&
			existing.Date == b.Date && existing.Slot == b.Slot {
			return bookingRepo.ErrDuplicateActiveSlot
		}
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) ListActiveByProviderAndDate(_ context.Context, providerID, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if active(b.Status) && b.ProviderID == providerID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) ListByProviderAndDate(_ context.Context, providerID, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ProviderID == providerID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = to
	return nil
}

func (m *memBookings) SetPayment(_ context.Context, id string, p *models.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Payment = p
	return nil
}

var _ bookingRepo.BookingRepository = (*memBookings)(nil)

type memProviders struct {
	providers map[string]models.Provider
}

func (m *memProviders) Create(_ context.Context, p *models.Provider) error { return nil }

func (m *memProviders) GetByID(_ context.Context, id string) (*models.Provider, error) {
	p, ok := m.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	cp := p
	return &cp, nil
}

func (m *memProviders) GetByEmail(_ context.Context, _ string) (*models.Provider, error) {
	return nil, providerRepo.ErrProviderNotFound
}

func (m *memProviders) List(_ context.Context, _ int64) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range m.providers {
		out = append(out, p)
	}
	return out, nil
}
func (m *memProviders) Update(_ context.Context, _ *models.Provider) error       { return nil }
func (m *memProviders) Delete(_ context.Context, _ string) error                 { return nil }
func (m *memProviders) UpdateTokenHash(_ context.Context, _, _ string) error     { return nil }
func (m *memProviders) AddService(_ context.Context, _ string, _ models.Service) error {
	return nil
}
func (m *memProviders) UpdateService(_ context.Context, _ string, _ models.Service) error {
	return nil
}
func (m *memProviders) SetServiceEnabled(_ context.Context, _, _ string, _ bool) error {
	return nil
}

var _ providerRepo.ProviderRepository = (*memProviders)(nil)

type memUsers struct {
	users map[string]models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error { return nil }

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, userRepo.ErrUserNotFound
}
func (m *memUsers) Update(_ context.Context, _ *models.User) error           { return nil }
func (m *memUsers) Delete(_ context.Context, _ string) error                 { return nil }
func (m *memUsers) UpdateTokenHash(_ context.Context, _, _ string) error     { return nil }

var _ userRepo.UserRepository = (*memUsers)(nil)

type memWindows struct {
	windows map[int]models.AvailabilityWindow
}

func (m *memWindows) Upsert(_ context.Context, w models.AvailabilityWindow) error {
	m.windows[w.Weekday] = w
	return nil
}
func (m *memWindows) Delete(_ context.Context, _ string, weekday int) error {
	delete(m.windows, weekday)
	return nil
}
func (m *memWindows) GetByProviderAndWeekday(_ context.Context, _ string, weekday int) (*models.AvailabilityWindow, error) {
	w, ok := m.windows[weekday]
	if !ok {
		return nil, nil
	}
	cp := w
	return &cp, nil
}
func (m *memWindows) ListByProvider(_ context.Context, _ string) ([]models.AvailabilityWindow, error) {
	return nil, nil
}

type fakePayments struct {
	mu          sync.Mutex
	sessions    int
	refunds     []string
	checkoutErr error
	refundErr   error
}

func (f *fakePayments) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	f.sessions++
	var total float64
	for _, it := range req.Items {
		total += it.Amount
	}
	return &payment.CheckoutSession{
		ID:          "cs_test_1",
		URL:         "https://checkout.example/cs_test_1",
		TotalAmount: total,
		PlatformFee: total / 10,
	}, nil
}

func (f *fakePayments) Refund(_ context.Context, paymentIntentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunds = append(f.refunds, paymentIntentID)
	return nil
}

type fakeExpiry struct {
	mu        sync.Mutex
	scheduled []string
	delays    []time.Duration
}

func (f *fakeExpiry) ScheduleExpiry(_ context.Context, bookingID string, after time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, bookingID)
	f.delays = append(f.delays, after)
	return nil
}

type fakeSlotCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (f *fakeSlotCache) InvalidateSlots(_ context.Context, providerID, date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, providerID+"|"+date)
}

func (f *fakeSlotCache) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}

// --- fixtures ---

const bookingMonday = "2026-01-05"

func newFixture() (*DefaultBookingService, *memBookings, *fakePayments, *fakeExpiry) {
	providers := &memProviders{providers: map[string]models.Provider{
		"prov-1": {
			ID:              "prov-1",
			Name:            "Dawn Cleaning Co",
			Currency:        "usd",
			PayoutAccountID: "acct_1",
			Services: []models.Service{
				{ID: "svc-clean", Name: "Standard clean", Price: 45.00, Enabled: true},
			},
		},
	}}
	windows := &memWindows{windows: map[int]models.AvailabilityWindow{
		1: {ProviderID: "prov-1", Weekday: 1, Start: "09:00", End: "12:00", IntervalMin: 60},
	}}
	bookings := newMemBookings()
	users := &memUsers{users: map[string]models.User{
		"cust-9": {ID: "cust-9", Email: "resident@example.com"},
	}}
	payments := &fakePayments{}
	expiry := &fakeExpiry{}

	engine := &scheduling.Engine{
		Providers: providers,
		Windows:   windows,
		Ledger:    bookings,
		Now: func() time.Time {
			return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
		},
	}
	svc := &DefaultBookingService{
		Engine:     engine,
		Bookings:   bookings,
		Providers:  providers,
		Users:      users,
		Payments:   payments,
		Expiry:     expiry,
		SlotCache:  &fakeSlotCache{},
		PendingTTL: 30 * time.Minute,
		SuccessURL: "https://residora.example/checkout/success",
		CancelURL:  "https://residora.example/checkout/cancel",
	}
	return svc, bookings, payments, expiry
}

func createReq() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ProviderID: "prov-1",
		Date:       bookingMonday,
		Slot:       "10:00",
		ServiceIDs: []string{"svc-clean"},
	}
}

// --- tests ---

func TestCreateBooking(t *testing.T) {
	svc, bookings, payments, expiry := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, resp.Booking.Status)
	assert.Equal(t, "https://checkout.example/cs_test_1", resp.CheckoutURL)
	assert.Equal(t, 1, payments.sessions)

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Payment)
	assert.Equal(t, "cs_test_1", stored.Payment.CheckoutSessionID)
	assert.Equal(t, paymentCreated, stored.Payment.Status)

	require.Len(t, expiry.scheduled, 1)
	assert.Equal(t, resp.Booking.ID, expiry.scheduled[0])
	assert.Equal(t, 30*time.Minute, expiry.delays[0])
}

func TestCreateBookingSlotConflictPassesThrough(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), "cust-10", createReq())
	assert.ErrorIs(t, err, scheduling.ErrSlotConflict)
}

// A failed checkout must not leave the slot held by an unpayable booking.
func TestCreateBookingCheckoutFailureReleasesSlot(t *testing.T) {
	svc, _, payments, _ := newFixture()
	payments.checkoutErr = errors.New("stripe down")

	_, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.Error(t, err)

	// Slot must be bookable again.
	payments.checkoutErr = nil
	_, err = svc.CreateBooking(context.Background(), "cust-9", createReq())
	assert.NoError(t, err)
}

func TestConfirmBooking(t *testing.T) {
	svc, bookings, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmBooking(context.Background(), resp.Booking.ID, "pi_42"))

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	require.NotNil(t, stored.Payment)
	assert.Equal(t, "pi_42", stored.Payment.PaymentIntentID)
	assert.Equal(t, paymentPaid, stored.Payment.Status)
}

func TestConfirmBookingNotPending(t *testing.T) {
	svc, _, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmBooking(context.Background(), resp.Booking.ID, "pi_42"))

	err = svc.ConfirmBooking(context.Background(), resp.Booking.ID, "pi_43")
	assert.ErrorIs(t, err, scheduling.ErrInvalidRequest)
}

func TestCancelBookingUnpaidSkipsRefund(t *testing.T) {
	svc, bookings, payments, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), "cust-9", resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Empty(t, payments.refunds)

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, stored.Status)
}

func TestCancelBookingPaidRefundsFirst(t *testing.T) {
	svc, bookings, payments, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmBooking(context.Background(), resp.Booking.ID, "pi_42"))

	cancelled, err := svc.CancelBooking(context.Background(), "cust-9", resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, []string{"pi_42"}, payments.refunds)

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, paymentRefunded, stored.Payment.Status)
}

// A failed refund leaves the booking untouched: the slot stays occupied until
// the money has actually gone back.
func TestCancelBookingRefundFailureKeepsBooking(t *testing.T) {
	svc, bookings, payments, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmBooking(context.Background(), resp.Booking.ID, "pi_42"))

	payments.refundErr = payment.ErrRefundFailed
	_, err = svc.CancelBooking(context.Background(), "cust-9", resp.Booking.ID)
	assert.ErrorIs(t, err, payment.ErrRefundFailed)

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	assert.Equal(t, paymentPaid, stored.Payment.Status)
}

func TestCancelBookingAuthz(t *testing.T) {
	svc, _, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), "stranger", resp.Booking.ID)
	assert.ErrorIs(t, err, scheduling.ErrUnauthorized)

	// The provider may cancel bookings on their own calendar.
	_, err = svc.CancelBooking(context.Background(), "prov-1", resp.Booking.ID)
	assert.NoError(t, err)
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	svc, _, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)
	_, err = svc.CancelBooking(context.Background(), "cust-9", resp.Booking.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), "cust-9", resp.Booking.ID)
	assert.ErrorIs(t, err, scheduling.ErrInvalidRequest)
}

func TestExpirePendingBooking(t *testing.T) {
	svc, bookings, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	require.NoError(t, svc.ExpirePendingBooking(context.Background(), resp.Booking.ID))

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, stored.Status)

	// Freed slot is open again.
	slots, err := svc.Engine.GetAvailableSlots(context.Background(), "prov-1", bookingMonday)
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00")
}

// Expiry arriving after confirmation must be a no-op.
func TestExpirePendingBookingIdempotent(t *testing.T) {
	svc, bookings, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmBooking(context.Background(), resp.Booking.ID, "pi_42"))

	require.NoError(t, svc.ExpirePendingBooking(context.Background(), resp.Booking.ID))
	require.NoError(t, svc.ExpirePendingBooking(context.Background(), "no-such-booking"))

	stored, err := bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

// Admission and cancellation change occupancy, so both must drop the cached
// slot list for the provider-date they touched.
func TestBookingWritesInvalidateSlotsCache(t *testing.T) {
	svc, _, _, _ := newFixture()
	cache := svc.SlotCache.(*fakeSlotCache)

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)
	require.Equal(t, []string{"prov-1|" + bookingMonday}, cache.keys())

	_, err = svc.CancelBooking(context.Background(), "cust-9", resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"prov-1|" + bookingMonday, "prov-1|" + bookingMonday}, cache.keys())
}

func TestExpiryInvalidatesSlotsCache(t *testing.T) {
	svc, _, _, _ := newFixture()
	cache := svc.SlotCache.(*fakeSlotCache)

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	require.NoError(t, svc.ExpirePendingBooking(context.Background(), resp.Booking.ID))
	assert.Len(t, cache.keys(), 2)

	// A repeat delivery changes nothing, so nothing to invalidate.
	require.NoError(t, svc.ExpirePendingBooking(context.Background(), resp.Booking.ID))
	assert.Len(t, cache.keys(), 2)
}

func TestGetBookingAuthz(t *testing.T) {
	svc, _, _, _ := newFixture()

	resp, err := svc.CreateBooking(context.Background(), "cust-9", createReq())
	require.NoError(t, err)

	got, err := svc.GetBooking(context.Background(), "cust-9", resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Booking.ID, got.ID)

	_, err = svc.GetBooking(context.Background(), "stranger", resp.Booking.ID)
	assert.ErrorIs(t, err, scheduling.ErrUnauthorized)
}
