package session

import (
	"testing"
	"time"

	"prosmart/pkg/models"
)

// testSnapshot builds one category with ten products split over two
// subcategories, plus a second category with two products.
func testSnapshot() *models.CatalogSnapshot {
	masks := make([]models.Product, 6)
	for i := range masks {
		masks[i] = models.Product{
			ProductID:   "m" + string(rune('0'+i)),
			ProductName: "Mask",
			CategoryID:  "c1",
			Subcategory: "Masks",
		}
	}
	gloves := make([]models.Product, 4)
	for i := range gloves {
		gloves[i] = models.Product{
			ProductID:   "g" + string(rune('0'+i)),
			ProductName: "Glove",
			CategoryID:  "c1",
			Subcategory: "Gloves",
		}
	}
	return &models.CatalogSnapshot{
		Categories: []models.Category{
			{
				CategoryID:   "c1",
				CategoryName: "Healthcare Essentials",
				Subcategories: []models.Subcategory{
					{SubcategoryID: "s1", SubcategoryName: "Masks", Products: masks},
					{SubcategoryID: "s2", SubcategoryName: "Gloves", Products: gloves},
				},
			},
			{
				CategoryID:   "c2",
				CategoryName: "Smart Home",
				Subcategories: []models.Subcategory{
					{SubcategoryID: "s3", SubcategoryName: "Bulbs", Products: []models.Product{
						{ProductID: "b0", ProductName: "Bulb", CategoryID: "c2", Subcategory: "Bulbs"},
						{ProductID: "b1", ProductName: "Bulb", CategoryID: "c2", Subcategory: "Bulbs"},
					}},
				},
			},
		},
	}
}

// newTestSession uses a synchronous load-more completion (zero delay) unless
// a delay is given.
func newTestSession(delay time.Duration) *Session {
	s := New(Options{InitialPageSize: 4, LoadMoreStep: 3, LoadMoreDelay: delay})
	s.SetSnapshot(testSnapshot())
	return s
}

func TestViewIsContiguousPrefix(t *testing.T) {
	s := newTestSession(0)

	view := s.View()
	if view.Total != 12 {
		t.Fatalf("total = %d, expected 12", view.Total)
	}
	if len(view.Products) != 4 {
		t.Fatalf("visible = %d, expected initial page size 4", len(view.Products))
	}
	expected := []string{"m0", "m1", "m2", "m3"}
	for i, id := range expected {
		if view.Products[i].ProductID != id {
			t.Errorf("visible[%d] = %s, expected %s", i, view.Products[i].ProductID, id)
		}
	}
	if !view.HasMore || view.State != PageIdle {
		t.Errorf("HasMore=%v State=%v", view.HasMore, view.State)
	}
}

func TestLoadMoreGrowsWindow(t *testing.T) {
	s := newTestSession(0)

	s.LoadMore()
	if got := s.DisplayedCount(); got != 7 {
		t.Errorf("displayedCount = %d, expected 7", got)
	}
	s.LoadMore()
	s.LoadMore()
	if got := s.DisplayedCount(); got != 13 {
		t.Errorf("displayedCount = %d, expected 13", got)
	}

	// Window covers everything now; further triggers are no-ops.
	before := s.DisplayedCount()
	s.LoadMore()
	s.SentinelVisible()
	if got := s.DisplayedCount(); got != before {
		t.Errorf("exhausted LoadMore changed displayedCount: %d -> %d", before, got)
	}
	if s.State() != PageExhausted {
		t.Errorf("state = %v, expected exhausted", s.State())
	}
}

func TestLoadMoreMonotonicWithinOneFilterConfig(t *testing.T) {
	s := newTestSession(0)

	prev := s.DisplayedCount()
	for i := 0; i < 10; i++ {
		s.LoadMore()
		got := s.DisplayedCount()
		if got < prev {
			t.Fatalf("displayedCount decreased: %d -> %d", prev, got)
		}
		prev = got
	}
}

func TestFilterChangeResetsWindow(t *testing.T) {
	reset := []struct {
		name  string
		apply func(*Session)
	}{
		{"tab change", func(s *Session) { s.SetActiveTab("Smart Home") }},
		{"subcategory toggle", func(s *Session) { s.ToggleSubcategory("Masks") }},
		{"search term", func(s *Session) { s.SetSearchTerm("mask") }},
		{"price range", func(s *Session) { s.SetPriceRange(0, 100) }},
		{"category link", func(s *Session) { s.ApplyCategoryQuery("smart home") }},
		{"explicit reset", func(s *Session) { s.ResetFilters() }},
	}

	for _, test := range reset {
		s := newTestSession(0)
		s.LoadMore()
		s.LoadMore()
		if s.DisplayedCount() <= 4 {
			t.Fatalf("%s: precondition failed", test.name)
		}

		test.apply(s)
		if got := s.DisplayedCount(); got != 4 {
			t.Errorf("%s: displayedCount = %d, expected reset to 4", test.name, got)
		}
	}
}

func TestPendingLoadDiscardedByFilterChange(t *testing.T) {
	s := newTestSession(30 * time.Millisecond)

	s.LoadMore()
	if s.State() != PageLoadingMore {
		t.Fatalf("state = %v, expected loading", s.State())
	}
	s.SetSearchTerm("mask")

	time.Sleep(100 * time.Millisecond)
	if got := s.DisplayedCount(); got != 4 {
		t.Errorf("discarded expansion still applied: displayedCount = %d", got)
	}
	if s.State() == PageLoadingMore {
		t.Error("state stuck in loading after reset")
	}
}

func TestAutoTriggerDoesNotDoubleFire(t *testing.T) {
	s := newTestSession(20 * time.Millisecond)

	s.SentinelVisible()
	s.SentinelVisible()
	s.SentinelVisible()

	time.Sleep(100 * time.Millisecond)
	if got := s.DisplayedCount(); got != 7 {
		t.Errorf("displayedCount = %d, expected a single step to 7", got)
	}
}

func TestTabChangeClearsSubcategories(t *testing.T) {
	s := newTestSession(0)
	s.ToggleSubcategory("Masks")

	s.SetActiveTab("Smart Home")
	view := s.View()
	if len(view.Selected) != 0 {
		t.Errorf("subcategory selection survived tab change: %v", view.Selected)
	}
	if view.Total != 2 {
		t.Errorf("total = %d, expected only Smart Home products", view.Total)
	}
	if len(view.Subcategories) != 1 || view.Subcategories[0] != "Bulbs" {
		t.Errorf("facet labels not scoped to tab: %v", view.Subcategories)
	}
}

func TestApplyCategoryQueryClearsSecondaryFacets(t *testing.T) {
	s := newTestSession(0)
	s.ToggleSubcategory("Masks")
	s.SetPriceRange(0, 100)

	s.ApplyCategoryQuery("HEALTHCARE ESSENTIALS")
	view := s.View()
	if view.ActiveTab != "Healthcare Essentials" {
		t.Errorf("activeTab = %q", view.ActiveTab)
	}
	if len(view.Selected) != 0 || view.PriceRange != nil {
		t.Errorf("secondary facets survived category navigation: %+v", view)
	}

	s.ApplyCategoryQuery("nope")
	if got := s.View().ActiveTab; got != models.AllItemsTab {
		t.Errorf("unmatched query resolved to %q", got)
	}
}

func TestToggleSubcategoryFiltersAndUnfilters(t *testing.T) {
	s := newTestSession(0)

	s.ToggleSubcategory("Gloves")
	if got := s.View().Total; got != 4 {
		t.Errorf("total = %d, expected 4 gloves", got)
	}

	s.ToggleSubcategory("Masks") // OR within the set broadens
	if got := s.View().Total; got != 10 {
		t.Errorf("total = %d, expected 10", got)
	}

	s.ToggleSubcategory("Gloves") // toggle off
	if got := s.View().Total; got != 6 {
		t.Errorf("total = %d, expected 6 masks", got)
	}
}

func TestSearchNarrowsAndEmptyResultIsValid(t *testing.T) {
	s := newTestSession(0)

	s.SetSearchTerm("bulb")
	if got := s.View().Total; got != 2 {
		t.Errorf("total = %d, expected 2", got)
	}

	s.SetSearchTerm("no such product")
	view := s.View()
	if view.Total != 0 || len(view.Products) != 0 {
		t.Errorf("empty result not represented: %+v", view)
	}
	if view.State != PageExhausted {
		t.Errorf("state = %v, expected exhausted for empty result", view.State)
	}

	s.ClearSearch()
	if got := s.View().Total; got != 12 {
		t.Errorf("total = %d after ClearSearch, expected 12", got)
	}
}

func TestSnapshotReplacementKeepsFilters(t *testing.T) {
	s := newTestSession(0)
	s.SetActiveTab("Smart Home")
	s.LoadMore()

	s.SetSnapshot(testSnapshot())
	view := s.View()
	if view.ActiveTab != "Smart Home" {
		t.Errorf("activeTab lost on refetch: %q", view.ActiveTab)
	}
	if got := s.DisplayedCount(); got != 4 {
		t.Errorf("window not reset on refetch: %d", got)
	}
}

func TestSortLatestFirstOption(t *testing.T) {
	s := New(Options{InitialPageSize: 4, LoadMoreStep: 3, SortLatestFirst: true})
	s.SetSnapshot(&models.CatalogSnapshot{
		Categories: []models.Category{{
			CategoryID:   "c1",
			CategoryName: "X",
			Subcategories: []models.Subcategory{{
				SubcategoryID:   "s1",
				SubcategoryName: "S",
				Products: []models.Product{
					{ProductID: "old", CreatedAt: "2023-01-01"},
					{ProductID: "new", CreatedAt: "2025-01-01"},
				},
			}},
		}},
	})

	view := s.View()
	if view.Products[0].ProductID != "new" {
		t.Errorf("latest-first ordering not applied: %v", view.Products[0].ProductID)
	}
}
