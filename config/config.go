package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL         string
	Port          string
	LookupTimeout time.Duration
	QuoteTTL      time.Duration
	NewsTTL       time.Duration
	NewsLimit     int
}

// Load reads configuration from the environment, after loading a .env file
// when one is present
func Load() (*Config, error) {
	// Absent .env is fine; real environments set variables directly
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lookupTimeout, err := durationSeconds("REQUEST_TIMEOUT", 7*time.Second)
	if err != nil {
		return nil, err
	}
	quoteTTL, err := durationSeconds("QUOTE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	newsTTL, err := durationSeconds("NEWS_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	newsLimit := 4
	if v := os.Getenv("NEWS_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("NEWS_LIMIT must be a positive integer, got %q", v)
		}
		newsLimit = n
	}

	return &Config{
		PGURL:         pgURL,
		Port:          port,
		LookupTimeout: lookupTimeout,
		QuoteTTL:      quoteTTL,
		NewsTTL:       newsTTL,
		NewsLimit:     newsLimit,
	}, nil
}

func durationSeconds(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds, got %q", name, v)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
