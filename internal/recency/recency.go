// Package recency normalizes the heterogeneous timestamp shapes the catalog
// API emits and derives a latest-first ordering from them.
package recency

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"prosmart/pkg/models"
)

// Calendar layouts tried for string timestamps that are not epoch numbers.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToEpochMs converts any timestamp representation seen in catalog payloads to
// epoch milliseconds. Unusable values collapse to 0 so products without a
// timestamp sort last rather than erroring.
//
// Resolution order: nil -> 0; time.Time -> epoch ms; finite number -> itself;
// string -> numeric parse first (a numeric string is an epoch-ms value, not a
// year), then calendar parse; {"$date": <string>} -> calendar parse of that
// value; anything else -> 0.
func ToEpochMs(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case time.Time:
		return v.UnixMilli()
	case *time.Time:
		if v == nil {
			return 0
		}
		return v.UnixMilli()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int64(v)
	case float32:
		return ToEpochMs(float64(v))
	case int:
		return int64(v)
	case int64:
		return v
	case json.Number:
		return parseTimestampString(v.String())
	case string:
		return parseTimestampString(v)
	case map[string]any:
		// Mongo extended JSON: {"$date": "2024-06-01T00:00:00.000Z"}
		raw, ok := v["$date"]
		if !ok {
			return 0
		}
		s, ok := raw.(string)
		if !ok {
			return 0
		}
		return parseDateString(s)
	default:
		return 0
	}
}

func parseTimestampString(s string) int64 {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	}
	return parseDateString(s)
}

func parseDateString(s string) int64 {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// ProductTimestamp returns the product's freshness: the most recent of its
// created_at and updated_at values.
func ProductTimestamp(p *models.Product) int64 {
	created := ToEpochMs(p.CreatedAt)
	updated := ToEpochMs(p.UpdatedAt)
	if updated > created {
		return updated
	}
	return created
}

// SortLatestFirst returns a new slice ordered by descending timestamp. The
// sort is stable, so products without a usable timestamp keep their original
// relative order at the end.
func SortLatestFirst(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ProductTimestamp(&sorted[i]) > ProductTimestamp(&sorted[j])
	})
	return sorted
}
