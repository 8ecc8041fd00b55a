package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Payment gateway configuration. Gateway selects the adapter:
	// "checkout" (hosted checkout, HMAC-verified) or "stripe".
	Gateway        string `mapstructure:"PAYMENT_GATEWAY"`
	GatewayBaseURL string `mapstructure:"GATEWAY_BASE_URL"`
	GatewayKeyID   string `mapstructure:"GATEWAY_KEY_ID"`
	GatewaySecret  string `mapstructure:"GATEWAY_SECRET"`
	StripeKey      string `mapstructure:"STRIPE_KEY"`

	// Booking configuration. Deposit is in whole currency units.
	Currency          string `mapstructure:"CURRENCY"`
	DepositAmount     int64  `mapstructure:"DEPOSIT_AMOUNT"`
	SlotStepMinutes   int    `mapstructure:"SLOT_STEP_MINUTES"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("PAYMENT_GATEWAY", "checkout")
	viper.SetDefault("GATEWAY_BASE_URL", "https://api.checkout.example.com")
	viper.SetDefault("CURRENCY", "INR")
	viper.SetDefault("DEPOSIT_AMOUNT", 50)
	viper.SetDefault("SLOT_STEP_MINUTES", 30)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)

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
