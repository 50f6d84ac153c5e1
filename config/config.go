package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB      int    `mapstructure:"REDIS_AUTH_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Stripe configuration.
	StripeKey          string  `mapstructure:"STRIPE_KEY"`
	PlatformFeePercent float64 `mapstructure:"PLATFORM_FEE_PERCENT"`
	CheckoutSuccessURL string  `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string  `mapstructure:"CHECKOUT_CANCEL_URL"`
	// Shared secret the payment processor callback must present. Empty means
	// the callback surface is disabled.
	PaymentCallbackSecret string `mapstructure:"PAYMENT_CALLBACK_SECRET"`

	// Cloudinary media storage.
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// Minutes a PENDING booking may hold its slot before the expiry worker releases it.
	BookingPendingTTLMin int `mapstructure:"BOOKING_PENDING_TTL_MIN"`

	// Slot interval in minutes used when an availability window doesn't set one.
	DefaultSlotIntervalMin int `mapstructure:"DEFAULT_SLOT_INTERVAL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:8080/checkout/success")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:8080/checkout/cancel")
	viper.SetDefault("PAYMENT_CALLBACK_SECRET", "")
	viper.SetDefault("PLATFORM_FEE_PERCENT", 10.0)
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("BOOKING_PENDING_TTL_MIN", 30)
	viper.SetDefault("DEFAULT_SLOT_INTERVAL_MIN", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
