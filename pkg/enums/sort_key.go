package enums

import "fmt"

// SortKey describes the ordering applied to a filtered product listing.
type SortKey string

const (
	SortKeyFeatured  SortKey = "featured"
	SortKeyNewest    SortKey = "newest"
	SortKeyPriceAsc  SortKey = "price-asc"
	SortKeyPriceDesc SortKey = "price-desc"
	SortKeyRating    SortKey = "rating"
)

var validSortKeys = []SortKey{
	SortKeyFeatured,
	SortKeyNewest,
	SortKeyPriceAsc,
	SortKeyPriceDesc,
	SortKeyRating,
}

// IsValid reports whether the value matches the canonical sort key enum.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts the raw string to SortKey. An empty string maps to
// the featured default.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortKeyFeatured, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
