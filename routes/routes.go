package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"residora/config"
	"residora/handlers"
	"residora/middleware"
)

// RegisterUserRoutes registers customer account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/logout", hb.User.Logout)
		api.GET("/me", hb.User.Profile)
	}
}

// RegisterProviderRoutes registers provider browsing plus the authenticated
// provider management surface.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Public browsing endpoints.
	public := r.Group("/api/providers")
	{
		public.POST("/register", hb.Provider.Register)
		public.POST("/login", hb.Provider.Login)
		public.GET("", hb.Provider.List)
		public.GET("/:id", hb.Provider.Get)
		public.GET("/:id/slots", hb.Availability.GetSlots)
		public.GET("/:id/products", hb.Product.ListByProvider)
	}

	// Management endpoints for the authenticated provider.
	mgmt := r.Group("/api/provider")
	{
		mgmt.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		mgmt.POST("/logout", hb.Provider.Logout)

		mgmt.PUT("/availability", hb.Provider.SetAvailability)
		mgmt.GET("/availability", hb.Provider.ListAvailability)
		mgmt.DELETE("/availability/:weekday", hb.Provider.RemoveAvailability)

		mgmt.POST("/services", hb.Provider.AddService)
		mgmt.PUT("/services/:id", hb.Provider.UpdateService)
		mgmt.PATCH("/services/:id/enabled", hb.Provider.SetServiceEnabled)

		mgmt.POST("/products", hb.Product.Create)
		mgmt.PUT("/products/:id", hb.Product.Update)
		mgmt.DELETE("/products/:id", hb.Product.Delete)

		mgmt.GET("/bookings", hb.Booking.ListForProvider)
		mgmt.DELETE("/bookings/:id", hb.Booking.Cancel)

		mgmt.POST("/image", hb.Storage.UploadProfileImage)
	}
}

// RegisterBookingRoutes sets up the customer-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		bookingGroup.POST("", hb.Booking.Create)
		bookingGroup.GET("", hb.Booking.ListMine)
		bookingGroup.GET("/:id", hb.Booking.Get)
		bookingGroup.DELETE("/:id", hb.Booking.Cancel)
	}
}

// RegisterProductRoutes sets up public product lookup and checkout.
func RegisterProductRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/products")
	{
		api.GET("/:id", hb.Product.Get)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/checkout", hb.Product.Checkout)
	}
}

// RegisterPaymentRoutes sets up the payment processor callback. The callback
// is authenticated with a shared secret so nobody else can confirm bookings.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.CallbackAuthMiddleware(config.AppConfig.PaymentCallbackSecret))
		api.POST("/confirm", hb.Booking.Confirm)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Residora"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProductRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
