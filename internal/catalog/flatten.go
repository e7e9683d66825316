// Package catalog derives flat, indexable views from a nested catalog
// snapshot. All functions are pure: they read the snapshot and build new
// structures without mutating it.
package catalog

import "prosmart/pkg/models"

// FlatCatalog is everything the filter pipeline and facet UI need, derived
// once per snapshot.
type FlatCatalog struct {
	// Products in catalog-traversal order: category order, then subcategory
	// order within each category. No re-sorting happens here.
	Products []models.Product

	// Display labels, de-duplicated, first-seen order preserved.
	CategoryNames    []string
	SubcategoryNames []string
	MainCategories   []string

	// CategoryIDToName resolves the raw category_id carried on products to
	// the display name the tab predicate matches against.
	CategoryIDToName map[string]string
}

// Flatten walks the snapshot and produces the flat product list plus the
// lookup indexes. A nil or empty snapshot yields all-empty outputs.
func Flatten(snapshot *models.CatalogSnapshot) FlatCatalog {
	flat := FlatCatalog{
		CategoryIDToName: make(map[string]string),
	}
	if snapshot == nil {
		return flat
	}

	seenCat := make(map[string]bool)
	seenSub := make(map[string]bool)
	seenMain := make(map[string]bool)

	for _, cat := range snapshot.Categories {
		if !seenCat[cat.CategoryName] {
			seenCat[cat.CategoryName] = true
			flat.CategoryNames = append(flat.CategoryNames, cat.CategoryName)
		}
		if cat.MainCategory != "" && !seenMain[cat.MainCategory] {
			seenMain[cat.MainCategory] = true
			flat.MainCategories = append(flat.MainCategories, cat.MainCategory)
		}
		flat.CategoryIDToName[cat.CategoryID] = cat.CategoryName

		for _, sub := range cat.Subcategories {
			if !seenSub[sub.SubcategoryName] {
				seenSub[sub.SubcategoryName] = true
				flat.SubcategoryNames = append(flat.SubcategoryNames, sub.SubcategoryName)
			}
			flat.Products = append(flat.Products, sub.Products...)
		}
	}
	return flat
}

// SubcategoriesFor returns the subcategory labels available under the active
// tab. The "All Items" sentinel exposes every subcategory.
func SubcategoriesFor(snapshot *models.CatalogSnapshot, activeTab string) []string {
	if snapshot == nil {
		return nil
	}
	if activeTab == models.AllItemsTab {
		return Flatten(snapshot).SubcategoryNames
	}

	var labels []string
	seen := make(map[string]bool)
	for _, cat := range snapshot.Categories {
		if cat.CategoryName != activeTab {
			continue
		}
		for _, sub := range cat.Subcategories {
			if !seen[sub.SubcategoryName] {
				seen[sub.SubcategoryName] = true
				labels = append(labels, sub.SubcategoryName)
			}
		}
	}
	return labels
}
