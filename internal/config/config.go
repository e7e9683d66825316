// Package config resolves the storefront's environment configuration once at
// startup. The catalog API base URL is the only required setting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds every tunable the engine reads from the environment.
type Config struct {
	// APIBaseURL is the catalog API root, e.g. https://api.prosmart.in/api.
	APIBaseURL     string `validate:"required,url"`
	RequestTimeout time.Duration

	InitialPageSize int `validate:"gt=0"`
	LoadMoreStep    int `validate:"gt=0"`
	LoadMoreDelay   time.Duration

	CacheStaleTime time.Duration
	CacheGCTime    time.Duration

	// PriceSliderMax seeds the price slider's upper bound in the UI. It is a
	// display default only and never bounds results unless the user sets a
	// range. TODO: derive this from the catalog's actual price spread once
	// real price data is populated.
	PriceSliderMax float64 `validate:"gt=0"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:      os.Getenv("STOREFRONT_API_BASE_URL"),
		RequestTimeout:  envDuration("STOREFRONT_REQUEST_TIMEOUT", 30*time.Second),
		InitialPageSize: envInt("STOREFRONT_INITIAL_PAGE_SIZE", 48),
		LoadMoreStep:    envInt("STOREFRONT_LOAD_MORE_STEP", 24),
		LoadMoreDelay:   envDuration("STOREFRONT_LOAD_MORE_DELAY", 300*time.Millisecond),
		CacheStaleTime:  envDuration("STOREFRONT_CACHE_STALE_TIME", 5*time.Minute),
		CacheGCTime:     envDuration("STOREFRONT_CACHE_GC_TIME", 30*time.Minute),
		PriceSliderMax:  envFloat("STOREFRONT_PRICE_SLIDER_MAX", 500),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return fallback
}
