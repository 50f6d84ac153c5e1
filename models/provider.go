package models

import "time"

// Provider represents a resident offering services and products on the platform.
type Provider struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL        string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Status          string    `bson:"status" json:"status"` // e.g., "pending", "active"
	Currency        string    `bson:"currency" json:"currency"`
	PayoutAccountID string    `bson:"payout_account_id,omitempty" json:"-"` // Stripe connected account
	Services        []Service `bson:"services,omitempty" json:"services,omitempty"`
	TokenHash       string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// Service is a bookable offering embedded in the provider's catalogue.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	DurationMin int     `bson:"duration_min,omitempty" json:"durationMin,omitempty"`
	Enabled     bool    `bson:"enabled" json:"enabled"`
}

// ProviderRegistration is the payload for creating a provider account.
type ProviderRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Currency string `json:"currency"`
}
