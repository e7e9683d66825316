package query

import (
	"strings"

	"prosmart/pkg/models"
)

// ResolveCategoryFromQuery maps a raw `category` URL parameter to a known
// category name. Exact match wins, then a case-insensitive match; anything
// else falls back to the "All Items" tab. An empty value also means all items.
func ResolveCategoryFromQuery(raw string, knownCategoryNames []string) string {
	if raw == "" {
		return models.AllItemsTab
	}
	for _, name := range knownCategoryNames {
		if name == raw {
			return name
		}
	}
	for _, name := range knownCategoryNames {
		if strings.EqualFold(name, raw) {
			return name
		}
	}
	return models.AllItemsTab
}
