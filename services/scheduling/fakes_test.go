package scheduling

import (
	"context"
	"sync"

	availabilityRepo "residora/database/repository/availability"
	bookingRepo "residora/database/repository/booking"
	providerRepo "residora/database/repository/provider"
	"residora/models"
)

// In-memory repository fakes. The ledger fake enforces the same active-slot
// uniqueness the real collection's partial index does, so conflict paths can
// be exercised without a database.

type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
}

func newFakeProviderRepo(providers ...models.Provider) *fakeProviderRepo {
	r := &fakeProviderRepo{providers: make(map[string]models.Provider)}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	return r
}

func (r *fakeProviderRepo) Create(_ context.Context, p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = *p
	return nil
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	out := p
	return &out, nil
}

func (r *fakeProviderRepo) GetByEmail(_ context.Context, email string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.Email == email {
			out := p
			return &out, nil
		}
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (r *fakeProviderRepo) List(_ context.Context, limit int64) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProviderRepo) Update(_ context.Context, p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p.ID]; !ok {
		return providerRepo.ErrProviderNotFound
	}
	r.providers[p.ID] = *p
	return nil
}

func (r *fakeProviderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, id)
	return nil
}

func (r *fakeProviderRepo) UpdateTokenHash(_ context.Context, id, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrProviderNotFound
	}
	p.TokenHash = tokenHash
	r.providers[id] = p
	return nil
}

func (r *fakeProviderRepo) AddService(_ context.Context, providerID string, service models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrProviderNotFound
	}
	p.Services = append(p.Services, service)
	r.providers[providerID] = p
	return nil
}

func (r *fakeProviderRepo) UpdateService(_ context.Context, providerID string, service models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrProviderNotFound
	}
	for i := range p.Services {
		if p.Services[i].ID == service.ID {
			p.Services[i] = service
			r.providers[providerID] = p
			return nil
		}
	}
	return providerRepo.ErrProviderNotFound
}

func (r *fakeProviderRepo) SetServiceEnabled(_ context.Context, providerID, serviceID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrProviderNotFound
	}
	for i := range p.Services {
		if p.Services[i].ID == serviceID {
			p.Services[i].Enabled = enabled
			r.providers[providerID] = p
			return nil
		}
	}
	return providerRepo.ErrProviderNotFound
}

var _ providerRepo.ProviderRepository = (*fakeProviderRepo)(nil)

type windowKey struct {
	providerID string
	weekday    int
}

type fakeAvailabilityRepo struct {
	mu      sync.Mutex
	windows map[windowKey]models.AvailabilityWindow
}

func newFakeAvailabilityRepo(windows ...models.AvailabilityWindow) *fakeAvailabilityRepo {
	r := &fakeAvailabilityRepo{windows: make(map[windowKey]models.AvailabilityWindow)}
	for _, w := range windows {
		r.windows[windowKey{w.ProviderID, w.Weekday}] = w
	}
	return r
}

func (r *fakeAvailabilityRepo) Upsert(_ context.Context, window models.AvailabilityWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows[windowKey{window.ProviderID, window.Weekday}] = window
	return nil
}

func (r *fakeAvailabilityRepo) Delete(_ context.Context, providerID string, weekday int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.windows, windowKey{providerID, weekday})
	return nil
}

func (r *fakeAvailabilityRepo) GetByProviderAndWeekday(_ context.Context, providerID string, weekday int) (*models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[windowKey{providerID, weekday}]
	if !ok {
		return nil, nil
	}
	out := w
	return &out, nil
}

func (r *fakeAvailabilityRepo) ListByProvider(_ context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilityWindow
	for wd := 0; wd < 7; wd++ {
		if w, ok := r.windows[windowKey{providerID, wd}]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

var _ availabilityRepo.AvailabilityRepository = (*fakeAvailabilityRepo)(nil)

type fakeLedger struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func newFakeLedger(bookings ...models.Booking) *fakeLedger {
	return &fakeLedger{bookings: bookings}
}

func isActive(status string) bool {
	return status == models.BookingPending || status == models.BookingConfirmed
}

func (l *fakeLedger) Insert(_ context.Context, booking *models.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.bookings {
		if isActive(b.Status) && b.ProviderID == booking.ProviderID && b.Date == booking.Date && b.Slot == booking.Slot {
			return bookingRepo.ErrDuplicateActiveSlot
		}
	}
	l.bookings = append(l.bookings, *booking)
	return nil
}

func (l *fakeLedger) GetByID(_ context.Context, id string) (*models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.bookings {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (l *fakeLedger) ListActiveByProviderAndDate(_ context.Context, providerID, date string) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if isActive(b.Status) && b.ProviderID == providerID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListByProviderAndDate(_ context.Context, providerID, date string) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if b.ProviderID == providerID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (l *fakeLedger) UpdateStatus(_ context.Context, id, from, to string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bookings {
		if l.bookings[i].ID == id && l.bookings[i].Status == from {
			l.bookings[i].Status = to
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (l *fakeLedger) SetPayment(_ context.Context, id string, payment *models.PaymentRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bookings {
		if l.bookings[i].ID == id {
			l.bookings[i].Payment = payment
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

var _ bookingRepo.BookingRepository = (*fakeLedger)(nil)
