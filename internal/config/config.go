package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	SESSender    string `mapstructure:"SES_SENDER"`
	StripeAPIKey string

	// Pricing knobs; defaults match the published fee schedule.
	DeliveryFee float64 `mapstructure:"DELIVERY_FEE"`
	ServiceRate float64 `mapstructure:"SERVICE_RATE"`
	TaxRate     float64 `mapstructure:"TAX_RATE"`

	// Tracking simulation intervals, in seconds.
	TrackingTickSeconds  int `mapstructure:"TRACKING_TICK_SECONDS"`
	StatusAdvanceSeconds int `mapstructure:"STATUS_ADVANCE_SECONDS"`

	// Artificial latency applied by in-memory stubs, in milliseconds.
	MockLatencyMillis int `mapstructure:"MOCK_LATENCY_MILLIS"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("DELIVERY_FEE", 2.99)
	viper.SetDefault("SERVICE_RATE", 0.05)
	viper.SetDefault("TAX_RATE", 0.0875)
	viper.SetDefault("TRACKING_TICK_SECONDS", 2)
	viper.SetDefault("STATUS_ADVANCE_SECONDS", 30)
	viper.SetDefault("MOCK_LATENCY_MILLIS", 0)

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	cfg.StripeAPIKey = os.Getenv("STRIPE_API_KEY")

	return &cfg, nil
}
