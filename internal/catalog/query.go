package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/pkg/enums"
)

// QuerySpec is the combined search, filter and sort input for a product
// listing. The zero value matches the whole catalog under the featured sort.
type QuerySpec struct {
	// SearchText matches case-insensitively against name, description and
	// tags. Empty matches everything.
	SearchText string
	// Category filters on exact category. Empty or "All" means no filter.
	Category string
	// MaxPrice caps the effective price. A zero or negative ceiling means
	// unbounded.
	MaxPrice decimal.Decimal
	// SortKey orders the filtered set. The zero value sorts featured-first.
	SortKey enums.SortKey
}

// Apply filters and orders the given products according to spec. It is pure:
// the input slice is never modified, and equal sort keys keep their original
// relative order.
func Apply(products []Product, spec QuerySpec) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, spec.SearchText) {
			continue
		}
		if !matchesCategory(p, spec.Category) {
			continue
		}
		if !matchesPriceCeiling(p, spec.MaxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, spec.SortKey)
	return filtered
}

func matchesSearch(p Product, text string) bool {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func matchesCategory(p Product, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return p.Category == category
}

func matchesPriceCeiling(p Product, max decimal.Decimal) bool {
	if max.Sign() <= 0 {
		return true
	}
	return p.EffectivePrice().LessThanOrEqual(max)
}

func sortProducts(products []Product, key enums.SortKey) {
	switch key {
	case enums.SortKeyPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().LessThan(products[j].EffectivePrice())
		})
	case enums.SortKeyPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().GreaterThan(products[j].EffectivePrice())
		})
	case enums.SortKeyNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case enums.SortKeyRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// Featured partition: featured items first, catalog order preserved
		// within each group.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}
}
