package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residora/models"
)

// 2026-01-05 is a Monday, 2026-01-06 a Tuesday.
const (
	testMonday  = "2026-01-05"
	testTuesday = "2026-01-06"
)

func testProvider() models.Provider {
	return models.Provider{
		ID:     "prov-1",
		Name:   "Dawn Cleaning Co",
		Email:  "dawn@example.com",
		Status: "active",
		Services: []models.Service{
			{ID: "svc-clean", Name: "Standard clean", Price: 45.00, DurationMin: 60, Enabled: true},
			{ID: "svc-deep", Name: "Deep clean", Price: 80.50, DurationMin: 120, Enabled: true},
			{ID: "svc-retired", Name: "Window wash", Price: 25.00, DurationMin: 30, Enabled: false},
		},
	}
}

func mondayWindow() models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ProviderID:  "prov-1",
		Weekday:     1,
		Start:       "09:00",
		End:         "12:00",
		IntervalMin: 60,
	}
}

func newTestEngine(providers *fakeProviderRepo, windows *fakeAvailabilityRepo, ledger *fakeLedger) *Engine {
	return &Engine{
		Providers:          providers,
		Windows:            windows,
		Ledger:             ledger,
		DefaultIntervalMin: 60,
		Now: func() time.Time {
			return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
		},
	}
}

func TestGetAvailableSlotsFullDayOpen(t *testing.T) {
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(mondayWindow()), newFakeLedger())

	slots, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots)
}

// Resolving availability is read-only: repeated calls return the same slots.
func TestGetAvailableSlotsIdempotent(t *testing.T) {
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(mondayWindow()), newFakeLedger())

	first, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	second, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetAvailableSlotsSubtractsActiveBookings(t *testing.T) {
	ledger := newFakeLedger(
		models.Booking{ID: "b1", ProviderID: "prov-1", Date: testMonday, Slot: "10:00", Status: models.BookingPending},
		models.Booking{ID: "b2", ProviderID: "prov-1", Date: testMonday, Slot: "11:00", Status: models.BookingConfirmed},
	)
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(mondayWindow()), ledger)

	slots, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slots)
}

func TestGetAvailableSlotsIgnoresInactiveBookings(t *testing.T) {
	ledger := newFakeLedger(
		models.Booking{ID: "b1", ProviderID: "prov-1", Date: testMonday, Slot: "09:00", Status: models.BookingCancelled},
		models.Booking{ID: "b2", ProviderID: "prov-1", Date: testMonday, Slot: "10:00", Status: models.BookingCompleted},
	)
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(mondayWindow()), ledger)

	slots, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots)
}

func TestGetAvailableSlotsDayWithoutWindow(t *testing.T) {
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(mondayWindow()), newFakeLedger())

	slots, err := e.GetAvailableSlots(context.Background(), "prov-1", testTuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots, "no-window day should be an empty list, not null")
}

func TestGetAvailableSlotsUnknownProvider(t *testing.T) {
	e := newTestEngine(newFakeProviderRepo(), newFakeAvailabilityRepo(), newFakeLedger())

	_, err := e.GetAvailableSlots(context.Background(), "ghost", testMonday)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestGetAvailableSlotsMalformedDate(t *testing.T) {
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(mondayWindow()), newFakeLedger())

	for _, date := range []string{"05-01-2026", "2026/01/05", "not-a-date", ""} {
		_, err := e.GetAvailableSlots(context.Background(), "prov-1", date)
		assert.ErrorIs(t, err, ErrInvalidRequest, "date %q", date)
	}
}

// A window that fails to parse must resolve to an empty day, never an error.
func TestGetAvailableSlotsCorruptWindow(t *testing.T) {
	bad := models.AvailabilityWindow{ProviderID: "prov-1", Weekday: 1, Start: "also", End: "bad", IntervalMin: 60}
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(bad), newFakeLedger())

	slots, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsDefaultInterval(t *testing.T) {
	w := mondayWindow()
	w.IntervalMin = 0
	e := newTestEngine(newFakeProviderRepo(testProvider()), newFakeAvailabilityRepo(w), newFakeLedger())
	e.DefaultIntervalMin = 90

	slots, err := e.GetAvailableSlots(context.Background(), "prov-1", testMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30"}, slots)
}

// Dates are anchored in UTC, so the weekday a date maps to does not depend on
// the host timezone.
func TestGetAvailableSlotsWeekdayAnchoredUTC(t *testing.T) {
	day, err := parseDate(testMonday)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day.Weekday())
	assert.Equal(t, time.UTC, day.Location())
}
