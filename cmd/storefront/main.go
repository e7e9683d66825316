package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"prosmart/internal/app"
	"prosmart/internal/config"
	"prosmart/internal/pricing"
	"prosmart/internal/telemetry"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	var (
		category      = flag.String("category", "", "category tab to activate (matches the ?category= URL parameter)")
		subcategories = flag.String("subcategories", "", "comma-separated subcategory labels to select")
		search        = flag.String("search", "", "free-text search term")
		minPrice      = flag.Float64("min-price", -1, "minimum price (inclusive)")
		maxPrice      = flag.Float64("max-price", -1, "maximum price (inclusive); defaults to the slider maximum when only -min-price is set")
		latest        = flag.Bool("latest", false, "sort the catalog latest-first before filtering")
		pages         = flag.Int("pages", 1, "number of pagination windows to load")
		suggest       = flag.String("suggest", "", "print search suggestions for a term and exit")
	)
	flag.Parse()

	// Initialize telemetry (optional)
	shutdown, enabled, err := telemetry.InitTelemetry()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without it")
		shutdown = func() {}
	} else if enabled {
		log.Info().Msg("Telemetry initialized successfully")
	}
	defer shutdown()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	storefront := app.NewStorefront(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshot, err := storefront.FetchCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch catalog")
	}

	sess := storefront.NewSession(*latest)
	sess.SetSnapshot(snapshot)

	if *suggest != "" {
		for _, s := range sess.Suggestions(*suggest, 5) {
			fmt.Println(s)
		}
		return
	}

	if *category != "" {
		sess.ApplyCategoryQuery(*category)
	}
	for _, sub := range strings.Split(*subcategories, ",") {
		if sub = strings.TrimSpace(sub); sub != "" {
			sess.ToggleSubcategory(sub)
		}
	}
	if *minPrice >= 0 || *maxPrice >= 0 {
		min, max := *minPrice, *maxPrice
		if min < 0 {
			min = 0
		}
		if max < 0 {
			max = cfg.PriceSliderMax
		}
		sess.SetPriceRange(min, max)
	}
	if *search != "" {
		sess.SetSearchTerm(*search)
	}

	// Expand the window as if the scroll sentinel became visible pages-1
	// times. Each expansion completes after the configured throttle delay.
	for i := 1; i < *pages; i++ {
		sess.SentinelVisible()
		time.Sleep(cfg.LoadMoreDelay + 50*time.Millisecond)
	}

	view := sess.View()

	log.Info().
		Str("tab", view.ActiveTab).
		Int("total", view.Total).
		Int("visible", len(view.Products)).
		Bool("has_more", view.HasMore).
		Str("state", view.State.String()).
		Msg("Catalog query complete")

	if view.Total == 0 {
		fmt.Println("No products found matching your filters.")
		return
	}

	for _, p := range view.Products {
		price := pricing.FormatINR(pricing.DisplayPrice(&p))
		rating := pricing.Rating(p.CategoryName, p.ProductID)
		name := p.ProductName
		if name == "" {
			name = p.ProductTitle
		}
		fmt.Printf("%-28s  %-24s  %-20s  %8s  %.1f\n",
			p.ProductID, name, p.SubcategoryLabel(), price, rating)
	}
	if view.HasMore {
		fmt.Printf("... %d more (rerun with -pages %d)\n", view.Total-len(view.Products), *pages+1)
	}
}
