package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/pkg/enums"
)

func testProduct(id, name, category string, price string, discount string, rating float64, featured bool, created string, tags ...string) Product {
	p := Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Rating:   rating,
		Featured: featured,
		Tags:     tags,
		Images:   []string{"https://example.com/" + id + ".jpg"},
	}
	if discount != "" {
		d := decimal.RequireFromString(discount)
		p.DiscountPrice = &d
	}
	if created != "" {
		ts, err := time.Parse(time.RFC3339, created)
		if err != nil {
			panic(err)
		}
		p.CreatedAt = ts
	}
	return p
}

func testCatalog() []Product {
	return []Product{
		testProduct("1", "Wireless Headphones", "Electronics", "299.99", "249.99", 4.8, true, "2024-01-10T08:00:00Z", "audio", "wireless"),
		testProduct("2", "Fitness Watch", "Wearables", "199.99", "", 4.6, true, "2024-01-15T10:30:00Z", "fitness"),
		testProduct("3", "Office Chair", "Furniture", "349.99", "299.99", 4.7, false, "2024-02-01T09:45:00Z", "office"),
		testProduct("4", "DSLR Camera", "Electronics", "1299.99", "", 4.9, true, "2024-02-10T11:15:00Z", "photography"),
		testProduct("5", "Water Bottle", "Home & Kitchen", "29.99", "", 4.5, false, "2024-02-15T13:30:00Z", "hydration"),
		testProduct("6", "Charging Pad", "Electronics", "39.99", "29.99", 4.4, false, "2024-02-20T15:45:00Z", "wireless", "charger"),
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func assertOrder(t *testing.T, got []Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestApplySearchMatchesNameDescriptionAndTags(t *testing.T) {
	products := testCatalog()

	assertOrder(t, Apply(products, QuerySpec{SearchText: "WATCH"}), "2")
	assertOrder(t, Apply(products, QuerySpec{SearchText: "wireless"}), "1", "6")

	products[2].Description = "Breathable mesh for long work sessions"
	assertOrder(t, Apply(products, QuerySpec{SearchText: "mesh"}), "3")
}

func TestApplyCategoryFilter(t *testing.T) {
	products := testCatalog()

	got := Apply(products, QuerySpec{Category: "Electronics"})
	assertOrder(t, got, "1", "4", "6")

	if got := Apply(products, QuerySpec{Category: AllCategories}); len(got) != len(products) {
		t.Fatalf("expected All to match everything, got %d", len(got))
	}
	if got := Apply(products, QuerySpec{Category: "Toys"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestApplyPriceCeilingUsesEffectivePrice(t *testing.T) {
	products := testCatalog()

	// Product 1 lists at 299.99 but discounts to 249.99, so a 250 ceiling
	// keeps it.
	got := Apply(products, QuerySpec{MaxPrice: decimal.RequireFromString("250")})
	assertOrder(t, got, "1", "2", "5", "6")

	// Zero ceiling means unbounded.
	if got := Apply(products, QuerySpec{}); len(got) != len(products) {
		t.Fatalf("expected unbounded ceiling to keep everything, got %d", len(got))
	}
}

func TestApplyFiltersAreConjunctive(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{
		SearchText: "wireless",
		Category:   "Electronics",
		MaxPrice:   decimal.RequireFromString("100"),
	})
	assertOrder(t, got, "6")
}

func TestApplySortPriceAscending(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{SortKey: enums.SortKeyPriceAsc})
	assertOrder(t, got, "6", "5", "2", "1", "3", "4")
}

func TestApplySortPriceDescending(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{SortKey: enums.SortKeyPriceDesc})
	assertOrder(t, got, "4", "3", "1", "2", "5", "6")
}

func TestApplySortNewest(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{SortKey: enums.SortKeyNewest})
	assertOrder(t, got, "6", "5", "4", "3", "2", "1")
}

func TestApplySortRating(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{SortKey: enums.SortKeyRating})
	assertOrder(t, got, "4", "1", "3", "2", "5", "6")
}

func TestApplyFeaturedSortIsStablePartition(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{SortKey: enums.SortKeyFeatured})
	// Featured items first, both groups in catalog order.
	assertOrder(t, got, "1", "2", "4", "3", "5", "6")
}

func TestApplyDefaultSpecReturnsFeaturedFirstCatalogOrder(t *testing.T) {
	got := Apply(testCatalog(), QuerySpec{Category: AllCategories})
	assertOrder(t, got, "1", "2", "4", "3", "5", "6")
}

func TestApplyStabilityOnEqualKeys(t *testing.T) {
	products := []Product{
		testProduct("a", "A", "X", "10", "", 4.0, false, "2024-01-01T00:00:00Z"),
		testProduct("b", "B", "X", "10", "", 4.0, false, "2024-01-01T00:00:00Z"),
		testProduct("c", "C", "X", "10", "", 4.0, false, "2024-01-01T00:00:00Z"),
	}

	for _, key := range []enums.SortKey{enums.SortKeyFeatured, enums.SortKeyNewest, enums.SortKeyPriceAsc, enums.SortKeyPriceDesc, enums.SortKeyRating} {
		got := Apply(products, QuerySpec{SortKey: key})
		assertOrder(t, got, "a", "b", "c")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := testCatalog()
	Apply(products, QuerySpec{SortKey: enums.SortKeyPriceDesc})
	assertOrder(t, products, "1", "2", "3", "4", "5", "6")
}

func TestApplyEmptyCatalog(t *testing.T) {
	if got := Apply(nil, QuerySpec{SearchText: "anything"}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}
