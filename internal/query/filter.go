// Package query implements the catalog filter pipeline: conjunctive facet
// predicates, free-text search and category resolution from URL parameters.
// Every function is pure and order-preserving.
package query

import "prosmart/pkg/models"

// ApplyFilters applies the tab, subcategory and price predicates in sequence.
// Each stage keeps the relative order of its input. Missing optional fields
// fail open: a product without a price compares as price 0, a product whose
// category_id is not in the index never matches a specific tab.
func ApplyFilters(
	products []models.Product,
	activeTab string,
	categoryIDToName map[string]string,
	selectedSubcategories []string,
	priceRange *models.PriceRange,
) []models.Product {
	filtered := products

	if activeTab != models.AllItemsTab {
		filtered = keep(filtered, func(p *models.Product) bool {
			return categoryIDToName[p.CategoryID] == activeTab
		})
	}

	if len(selectedSubcategories) > 0 {
		selected := make(map[string]bool, len(selectedSubcategories))
		for _, name := range selectedSubcategories {
			selected[name] = true
		}
		filtered = keep(filtered, func(p *models.Product) bool {
			return selected[p.SubcategoryLabel()]
		})
	}

	if priceRange != nil {
		filtered = keep(filtered, func(p *models.Product) bool {
			return priceRange.Contains(p.Price())
		})
	}

	return filtered
}

// keep returns the products matching pred, preserving input order. When
// nothing is filtered out it returns the input slice unchanged.
func keep(products []models.Product, pred func(*models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if pred(&products[i]) {
			out = append(out, products[i])
		}
	}
	if len(out) == len(products) {
		return products
	}
	return out
}
