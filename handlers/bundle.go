package handlers

import (
	providerRepo "residora/database/repository/provider"
	userRepo "residora/database/repository/user"
)

// HandlerBundle aggregates the HTTP handlers and the repositories the auth
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Provider     *ProviderHandler
	User         *UserHandler
	Product      *ProductHandler
	Storage      *StorageHandler

	UserRepo     userRepo.UserRepository
	ProviderRepo providerRepo.ProviderRepository
}
