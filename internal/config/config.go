package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`
	ListenAddr  string        `envconfig:"LISTEN_ADDR" default:":8080"`

	// Payment gateway callback settings. The gateway itself is external;
	// the core only builds checkout URLs and verifies webhook signatures.
	PaymentWebhookSecret string `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	PaymentCheckoutBase  string `envconfig:"PAYMENT_CHECKOUT_BASE" default:"https://checkout.example.com/session"`
	PaymentCurrency      string `envconfig:"PAYMENT_CURRENCY" default:"eur"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
