// Package config loads process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Event struct {
	Name     string
	Datetime string
	Location string
	Address  string
}

type Config struct {
	Port            string
	BaseURL         string
	DatabaseURL     string
	RedisURL        string
	StripeSecretKey string
	PaymentVerifier string
	PaymentLinkURL  string
	CheckinActor    string
	CORSOrigins     []string
	Event           Event
}

const (
	defaultPort  = "8080"
	defaultActor = "door"
)

// Load reads the .env file when present, then the process environment.
// Missing optional settings fall back to defaults with a WARN line so
// misconfigured deployments are visible at startup.
func Load(logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}
	if err := godotenv.Load(); err != nil {
		logger.Printf("WARN: .env not found, using process environment")
	}

	port := getenv("PORT", "")
	if port == "" {
		logger.Printf("WARN: PORT not set, using default %s", defaultPort)
		port = defaultPort
	}

	baseURL := getenv("BASE_URL", "")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
		logger.Printf("WARN: BASE_URL not set, QR codes will point at %s", baseURL)
	}

	return Config{
		Port:            port,
		BaseURL:         baseURL,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PaymentVerifier: getenv("PAYMENT_VERIFIER", "stripe"),
		PaymentLinkURL:  os.Getenv("PAYMENT_LINK_URL"),
		CheckinActor:    getenv("CHECKIN_ACTOR", defaultActor),
		CORSOrigins:     parseCSV(os.Getenv("CORS_ORIGINS")),
		Event: Event{
			Name:     getenv("EVENT_NAME", "Event"),
			Datetime: os.Getenv("EVENT_DATETIME"),
			Location: os.Getenv("EVENT_LOCATION"),
			Address:  os.Getenv("EVENT_ADDRESS"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
