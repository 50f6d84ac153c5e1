package models

import "time"

// Product is a purchasable item listed by a provider.
type Product struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"providerId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	ImageURL    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Enabled     bool      `bson:"enabled" json:"enabled"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// ProductCheckoutRequest is the payload for purchasing products from one provider.
type ProductCheckoutRequest struct {
	ProviderID string   `json:"providerId" binding:"required"`
	ProductIDs []string `json:"productIds" binding:"required,min=1"`
}
