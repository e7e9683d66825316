package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "https://api.prosmart.in/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InitialPageSize != 48 || cfg.LoadMoreStep != 24 {
		t.Errorf("pagination defaults wrong: %+v", cfg)
	}
	if cfg.LoadMoreDelay != 300*time.Millisecond {
		t.Errorf("LoadMoreDelay = %v", cfg.LoadMoreDelay)
	}
	if cfg.CacheStaleTime != 5*time.Minute || cfg.CacheGCTime != 30*time.Minute {
		t.Errorf("cache defaults wrong: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "http://localhost:3000/api")
	t.Setenv("STOREFRONT_INITIAL_PAGE_SIZE", "12")
	t.Setenv("STOREFRONT_LOAD_MORE_DELAY", "50ms")
	t.Setenv("STOREFRONT_PRICE_SLIDER_MAX", "16000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InitialPageSize != 12 || cfg.LoadMoreDelay != 50*time.Millisecond || cfg.PriceSliderMax != 16000 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("missing base URL did not fail validation")
	}
}
