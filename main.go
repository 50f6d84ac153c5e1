package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"residora/config"
	"residora/cron"
	"residora/database"
	availabilityRepoPkg "residora/database/repository/availability"
	bookingRepoPkg "residora/database/repository/booking"
	productRepoPkg "residora/database/repository/product"
	providerRepoPkg "residora/database/repository/provider"
	userRepoPkg "residora/database/repository/user"
	"residora/handlers"
	"residora/routes"
	"residora/services/booking"
	"residora/services/payment"
	"residora/services/product"
	"residora/services/provider"
	"residora/services/scheduling"
	"residora/services/storage"
	"residora/services/user"
	"residora/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()
	prodRepo := productRepoPkg.NewMongoProductRepo()

	// services.
	engine := &scheduling.Engine{
		Providers:          provRepo,
		Windows:            availRepo,
		Ledger:             bkRepo,
		DefaultIntervalMin: config.AppConfig.DefaultSlotIntervalMin,
		Logger:             logger,
	}

	paymentHandler := payment.NewStripeHandler(config.AppConfig.PlatformFeePercent)
	expiryScheduler := cron.NewScheduler()
	defer expiryScheduler.Close()

	slotsCache := utils.NewSlotsCache(utils.GetCacheClient(), 30*time.Second)

	bookingService := &booking.DefaultBookingService{
		Engine:     engine,
		Bookings:   bkRepo,
		Providers:  provRepo,
		Users:      usrRepo,
		Payments:   paymentHandler,
		Expiry:     expiryScheduler,
		SlotCache:  slotsCache,
		PendingTTL: time.Duration(config.AppConfig.BookingPendingTTLMin) * time.Minute,
		SuccessURL: config.AppConfig.CheckoutSuccessURL,
		CancelURL:  config.AppConfig.CheckoutCancelURL,
	}

	userService := &user.DefaultUserService{Repo: usrRepo}
	providerService := &provider.DefaultProviderService{Repo: provRepo, Windows: availRepo}
	productService := &product.DefaultProductService{
		Repo:       prodRepo,
		Providers:  provRepo,
		Payments:   paymentHandler,
		SuccessURL: config.AppConfig.CheckoutSuccessURL,
		CancelURL:  config.AppConfig.CheckoutCancelURL,
	}

	var storageService storage.StorageService
	if cloud, err := storage.NewCloudinaryStorage(); err != nil {
		logger.Sugar().Warnf("main: cloudinary storage unavailable, image uploads disabled: %v", err)
	} else {
		storageService = cloud
	}

	// Background expiry worker for abandoned PENDING bookings.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	cron.InitExpiryWorker(workerCtx, bookingService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(engine, slotsCache),
		Booking:      handlers.NewBookingHandler(bookingService),
		Provider:     handlers.NewProviderHandler(providerService),
		User:         handlers.NewUserHandler(userService),
		Product:      handlers.NewProductHandler(productService),
		Storage:      handlers.NewStorageHandler(storageService, providerService),
		UserRepo:     usrRepo,
		ProviderRepo: provRepo,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
