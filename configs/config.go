package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBSource   string
	ServerPort string
	CORSOrigin string

	JWTSecret string
	JWTTTL    time.Duration

	PaymentProviderURL string
	PaymentProviderKey string
	PaymentTimeout     time.Duration

	DeliveryFee int64
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBSource:   getEnv("DB_SOURCE", "food_delivery.db"),
		ServerPort: getEnv("SERVER_PORT", "5000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		PaymentProviderURL: os.Getenv("PAYMENT_PROVIDER_URL"),
		PaymentProviderKey: os.Getenv("PAYMENT_PROVIDER_KEY"),
		PaymentTimeout:     getDuration("PAYMENT_TIMEOUT", 30*time.Second),

		DeliveryFee: getInt64("DELIVERY_FEE", 0),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default", key)
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("invalid integer for %s, using default", key)
	}
	return fallback
}
