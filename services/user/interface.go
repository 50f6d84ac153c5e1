package user

import (
	"context"

	"residora/models"
)

// AuthResponse carries the signed token and the account details a client
// needs after signup or signin.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserService manages customer accounts and their sessions.
type UserService interface {
	Register(ctx context.Context, reg models.UserRegistration) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	RevokeAuthToken(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}
