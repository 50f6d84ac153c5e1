package models

import "time"

// Booking statuses. PENDING and CONFIRMED occupy their slot; CANCELLED and
// COMPLETED do not block new bookings (COMPLETED bookings are in the past).
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Booking represents one customer booking of a provider slot.
type Booking struct {
	ID         string         `bson:"id" json:"id"`
	ProviderID string         `bson:"provider_id" json:"providerId"`
	CustomerID string         `bson:"customer_id" json:"customerId"`
	Date       string         `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slot       string         `bson:"slot" json:"slot"` // "HH:MM" on the provider's interval grid
	Status     string         `bson:"status" json:"status"`
	TotalPrice float64        `bson:"total_price" json:"totalPrice"`
	Items      []BookingItem  `bson:"items" json:"items"`
	Payment    *PaymentRecord `bson:"payment,omitempty" json:"payment,omitempty"`
	CreatedAt  time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `bson:"updated_at" json:"updatedAt"`
}

// BookingItem is one service line on a booking, priced at booking time.
type BookingItem struct {
	ServiceID string  `bson:"service_id" json:"serviceId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
}

// PaymentRecord links a booking to its Stripe checkout session.
type PaymentRecord struct {
	CheckoutSessionID string    `bson:"checkout_session_id" json:"checkoutSessionId"`
	PaymentIntentID   string    `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	Amount            float64   `bson:"amount" json:"amount"`
	PlatformFee       float64   `bson:"platform_fee" json:"platformFee"`
	Currency          string    `bson:"currency" json:"currency"`
	Status            string    `bson:"status" json:"status"` // e.g., "created", "paid", "refunded"
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
}

// CreateBookingRequest is the payload for booking a slot.
type CreateBookingRequest struct {
	ProviderID string   `json:"providerId" binding:"required"`
	Date       string   `json:"date" binding:"required"` // "YYYY-MM-DD"
	Slot       string   `json:"slot" binding:"required"` // "HH:MM"
	ServiceIDs []string `json:"serviceIds" binding:"required,min=1"`
}

// BookingResponse is returned after a successful booking creation.
type BookingResponse struct {
	Booking     *Booking `json:"booking"`
	CheckoutURL string   `json:"checkoutUrl,omitempty"`
}
