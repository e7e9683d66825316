// Package pricing generates the display-only commerce fillers the storefront
// shows when real data is absent: a deterministic pseudo price and rating
// derived from hashing the product id. These are documented fallbacks, not a
// source of truth; the filtering core never depends on them.
package pricing

import (
	"fmt"
	"strings"

	"prosmart/pkg/models"
)

// baseRatings maps category display names to the rating baseline shown on
// product cards. Unknown categories use 4.5.
var baseRatings = map[string]float64{
	"Healthcare Essentials": 4.6,
	"Personal Care":         4.8,
	"Smart Home":            4.5,
	"Gadgets & Accessories": 4.2,
	"Tools & Hardware":      4.3,
	"Kids & Crafts":         4.7,
}

// hashID is the classic 31x string hash with 32-bit wraparound, matching the
// storefront's historical behavior so generated prices stay stable across
// releases.
func hashID(id string) int32 {
	var h int32
	for _, r := range id {
		h = (h << 5) - h + int32(r)
	}
	return h
}

func absHash(id string) int64 {
	h := int64(hashID(id))
	if h < 0 {
		h = -h
	}
	return h
}

// FallbackPrice maps the product id to a stable price in [1000, 15999].
func FallbackPrice(productID string) float64 {
	return float64(absHash(productID)%15000 + 1000)
}

// DisplayPrice returns the real product price when present and non-zero, the
// generated fallback otherwise.
func DisplayPrice(p *models.Product) float64 {
	if p.ProductPrice != nil && *p.ProductPrice != 0 {
		return *p.ProductPrice
	}
	return FallbackPrice(p.ProductID)
}

// Rating derives a per-product rating from the category baseline plus a
// hash-based variation in [-0.4, +0.4], clamped to [1, 5].
func Rating(categoryName, productID string) float64 {
	base, ok := baseRatings[categoryName]
	if !ok {
		base = 4.5
	}
	variation := float64(absHash(productID)%9)/10 - 0.4
	rating := base + variation
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// HasDiscount marks roughly a third of products as discounted, keyed on the
// first character of the id.
func HasDiscount(productID string) bool {
	if productID == "" {
		return false
	}
	return int([]rune(productID)[0])%3 == 0
}

// OriginalPrice is the struck-through pre-discount price: a 25% markup,
// floored.
func OriginalPrice(price float64) int64 {
	return int64(price * 1.25)
}

// FormatINR renders an amount as rupees with Indian digit grouping
// (12,34,567) and no fraction digits.
func FormatINR(amount float64) string {
	n := int64(amount + 0.5)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return "₹" + sign + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return "₹" + sign + strings.Join(groups, ",") + "," + tail
}
