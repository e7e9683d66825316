package app

import (
	"context"

	"prosmart/internal/client"
	"prosmart/internal/config"
	"prosmart/internal/querycache"
	"prosmart/internal/session"
	"prosmart/pkg/models"
)

// catalogKey is the cache key for the full catalog snapshot; the storefront
// fetches it wholesale and never in parts.
const catalogKey = "categories-with-products"

// Storefront holds the wired application components.
type Storefront struct {
	Config  *config.Config
	Client  *client.Client
	Catalog *querycache.Cache[*models.CatalogSnapshot]
}

// NewStorefront wires config -> client -> cache.
func NewStorefront(cfg *config.Config) *Storefront {
	return &Storefront{
		Config:  cfg,
		Client:  client.New(cfg.APIBaseURL, cfg.RequestTimeout),
		Catalog: querycache.New[*models.CatalogSnapshot](cfg.CacheStaleTime, cfg.CacheGCTime),
	}
}

// FetchCatalog returns the catalog snapshot, served from cache while fresh.
func (s *Storefront) FetchCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	return s.Catalog.Fetch(ctx, catalogKey, s.Client.FetchCatalog)
}

// RefreshCatalog invalidates the cached snapshot so the next fetch hits the
// API; an in-flight stale fetch is discarded rather than cached.
func (s *Storefront) RefreshCatalog() {
	s.Catalog.Invalidate(catalogKey)
}

// NewSession creates a browse session with the configured pagination tuning.
func (s *Storefront) NewSession(sortLatestFirst bool) *session.Session {
	return session.New(session.Options{
		InitialPageSize: s.Config.InitialPageSize,
		LoadMoreStep:    s.Config.LoadMoreStep,
		LoadMoreDelay:   s.Config.LoadMoreDelay,
		SortLatestFirst: sortLatestFirst,
	})
}
