package query

import (
	"strings"

	"prosmart/pkg/models"
)

// Search performs a case-insensitive substring match across every searchable
// product field. An empty (or whitespace-only) term returns the input
// unchanged. Matches keep their original order; there is no ranking.
func Search(products []models.Product, term string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return products
	}
	return keep(products, func(p *models.Product) bool {
		return matchesTerm(p, needle)
	})
}

// matchesTerm checks the lowercased needle against every searchable field.
// Absent fields are skipped, never a forced non-match.
func matchesTerm(p *models.Product, needle string) bool {
	for _, field := range []string{
		p.ProductName,
		p.ProductTitle,
		p.ProductDescription,
		p.CategoryName,
		p.Subcategory,
		p.SubcategoryName,
		p.MainCategory,
	} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Suggestions collects up to limit distinct labels whose lowercase form
// starts with the search term, scanning product, category, subcategory and
// main-category names in that order.
func Suggestions(products []models.Product, term string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || limit <= 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(label string) {
		if label == "" || seen[label] || !strings.HasPrefix(strings.ToLower(label), needle) {
			return
		}
		seen[label] = true
		out = append(out, label)
	}

	for i := range products {
		p := &products[i]
		add(p.ProductName)
		add(p.CategoryName)
		add(p.Subcategory)
		add(p.MainCategory)
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
