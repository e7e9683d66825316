// Package session holds the shared browse state of one storefront visitor:
// the active category tab, subcategory selections, price range, search term
// and the pagination window over the filtered result. It is the single
// source of truth multiple views read; mutations go through its narrow
// method surface and every change re-derives the visible product window.
package session

import (
	"sync"
	"time"

	"prosmart/internal/catalog"
	"prosmart/internal/query"
	"prosmart/internal/recency"
	"prosmart/pkg/models"
)

// PageState describes the paginator.
type PageState int

const (
	// PageIdle: showing displayedCount items, more are available.
	PageIdle PageState = iota
	// PageLoadingMore: an expansion of the window is pending.
	PageLoadingMore
	// PageExhausted: the window already covers every filtered product.
	PageExhausted
)

func (s PageState) String() string {
	switch s {
	case PageIdle:
		return "idle"
	case PageLoadingMore:
		return "loading_more"
	case PageExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Options tune the pagination window. Zero values fall back to the defaults
// the storefront ships with.
type Options struct {
	InitialPageSize int
	LoadMoreStep    int
	// LoadMoreDelay throttles window expansions so fast scrolling does not
	// fire many of them at once. It is a UX delay, not an I/O wait; zero or
	// negative completes the expansion synchronously.
	LoadMoreDelay time.Duration
	// SortLatestFirst orders the flattened catalog by recency before
	// filtering instead of keeping backend order.
	SortLatestFirst bool
}

const (
	defaultInitialPageSize = 48
	defaultLoadMoreStep    = 24
)

// View is the derived projection a renderer consumes. It is recomputed from
// scratch on every read; all slices are copies.
type View struct {
	Products      []models.Product
	Total         int
	HasMore       bool
	State         PageState
	ActiveTab     string
	SearchTerm    string
	Subcategories []string
	Selected      []string
	PriceRange    *models.PriceRange
}

// Session is safe for concurrent use; the load-more throttle completes on a
// timer goroutine.
type Session struct {
	mu   sync.Mutex
	opts Options

	snapshot *models.CatalogSnapshot
	flat     catalog.FlatCatalog

	activeTab             string
	selectedSubcategories []string
	priceRange            *models.PriceRange
	searchTerm            string

	filtered []models.Product

	displayedCount int
	loading        bool
	gen            uint64
	timer          *time.Timer
}

// New creates an empty session. Products appear once SetSnapshot delivers a
// catalog fetch result.
func New(opts Options) *Session {
	if opts.InitialPageSize <= 0 {
		opts.InitialPageSize = defaultInitialPageSize
	}
	if opts.LoadMoreStep <= 0 {
		opts.LoadMoreStep = defaultLoadMoreStep
	}
	return &Session{
		opts:           opts,
		activeTab:      models.AllItemsTab,
		displayedCount: opts.InitialPageSize,
	}
}

// SetSnapshot replaces the catalog wholesale. Filter selections survive a
// refetch; the pagination window resets.
func (s *Session) SetSnapshot(snapshot *models.CatalogSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.flat = catalog.Flatten(snapshot)
	if s.opts.SortLatestFirst {
		s.flat.Products = recency.SortLatestFirst(s.flat.Products)
	}
	s.resetWindowLocked()
	s.refilterLocked()
}

// SetActiveTab switches the category tab, clearing subcategory selections.
func (s *Session) SetActiveTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
	s.selectedSubcategories = nil
	s.resetWindowLocked()
	s.refilterLocked()
}

// ApplyCategoryQuery resolves a raw `category` URL parameter against the
// known category names and activates the result. Navigating via a category
// link also clears subcategory and price selections.
func (s *Session) ApplyCategoryQuery(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = query.ResolveCategoryFromQuery(raw, s.flat.CategoryNames)
	s.selectedSubcategories = nil
	s.priceRange = nil
	s.resetWindowLocked()
	s.refilterLocked()
}

// ToggleSubcategory adds the subcategory to the selection, or removes it if
// already selected.
func (s *Session) ToggleSubcategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sel := range s.selectedSubcategories {
		if sel == name {
			s.selectedSubcategories = append(s.selectedSubcategories[:i], s.selectedSubcategories[i+1:]...)
			s.resetWindowLocked()
			s.refilterLocked()
			return
		}
	}
	s.selectedSubcategories = append(s.selectedSubcategories, name)
	s.resetWindowLocked()
	s.refilterLocked()
}

// SetPriceRange bounds results to the inclusive [min, max] price interval.
func (s *Session) SetPriceRange(min, max float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceRange = &models.PriceRange{Min: min, Max: max}
	s.resetWindowLocked()
	s.refilterLocked()
}

// ClearPriceRange removes the price bound.
func (s *Session) ClearPriceRange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceRange = nil
	s.resetWindowLocked()
	s.refilterLocked()
}

// SetSearchTerm updates the shared search box value.
func (s *Session) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
	s.resetWindowLocked()
	s.refilterLocked()
}

// ClearSearch empties the search box.
func (s *Session) ClearSearch() {
	s.SetSearchTerm("")
}

// ResetFilters restores every facet to its default.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = models.AllItemsTab
	s.selectedSubcategories = nil
	s.priceRange = nil
	s.resetWindowLocked()
	s.refilterLocked()
}

// LoadMore asks for the next window expansion. It is a no-op while an
// expansion is pending or when the window already covers every product.
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading || s.displayedCount >= len(s.filtered) {
		return
	}
	s.loading = true
	if s.opts.LoadMoreDelay <= 0 {
		s.completeLoadLocked(s.gen)
		return
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.opts.LoadMoreDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.completeLoadLocked(gen)
	})
}

// SentinelVisible is the proximity auto-trigger: the scroll sentinel entered
// the viewport. It shares LoadMore's transition logic, so it cannot
// double-fire while loading or exhausted.
func (s *Session) SentinelVisible() {
	s.LoadMore()
}

func (s *Session) completeLoadLocked(gen uint64) {
	// A filter change while the expansion was pending discards it.
	if gen != s.gen || !s.loading {
		return
	}
	s.loading = false
	s.displayedCount += s.opts.LoadMoreStep
}

// resetWindowLocked returns pagination to the initial page size and discards
// any in-flight expansion.
func (s *Session) resetWindowLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.loading = false
	s.displayedCount = s.opts.InitialPageSize
}

func (s *Session) refilterLocked() {
	filtered := query.ApplyFilters(
		s.flat.Products,
		s.activeTab,
		s.flat.CategoryIDToName,
		s.selectedSubcategories,
		s.priceRange,
	)
	s.filtered = query.Search(filtered, s.searchTerm)
}

// State reports the paginator state.
func (s *Session) State() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() PageState {
	if s.loading {
		return PageLoadingMore
	}
	if s.displayedCount >= len(s.filtered) {
		return PageExhausted
	}
	return PageIdle
}

// DisplayedCount returns the current window size.
func (s *Session) DisplayedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayedCount
}

// View derives the renderable projection: the visible window (a contiguous
// prefix of the filtered list), facet labels scoped to the active tab and
// the current filter selections.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.displayedCount
	if count > len(s.filtered) {
		count = len(s.filtered)
	}
	visible := make([]models.Product, count)
	copy(visible, s.filtered[:count])

	selected := make([]string, len(s.selectedSubcategories))
	copy(selected, s.selectedSubcategories)

	var priceRange *models.PriceRange
	if s.priceRange != nil {
		r := *s.priceRange
		priceRange = &r
	}

	return View{
		Products:      visible,
		Total:         len(s.filtered),
		HasMore:       s.displayedCount < len(s.filtered),
		State:         s.stateLocked(),
		ActiveTab:     s.activeTab,
		SearchTerm:    s.searchTerm,
		Subcategories: catalog.SubcategoriesFor(s.snapshot, s.activeTab),
		Selected:      selected,
		PriceRange:    priceRange,
	}
}

// Suggestions returns search-box completions against the full catalog.
func (s *Session) Suggestions(term string, limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Suggestions(s.flat.Products, term, limit)
}

// CategoryNames lists the known category tabs in catalog order.
func (s *Session) CategoryNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.flat.CategoryNames))
	copy(names, s.flat.CategoryNames)
	return names
}
