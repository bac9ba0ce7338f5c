package catalog

// AllCategories is the sentinel meaning "no category filter".
const AllCategories = "All"

// Store holds the immutable product list seeded at startup. Lookups are
// linear scans; the catalog tops out at a few dozen records.
type Store struct {
	products []Product
	byID     map[string]int
}

// NewStore builds a catalog store over the provided products. The slice is
// copied so later mutation by the caller cannot leak in.
func NewStore(products []Product) *Store {
	owned := make([]Product, len(products))
	copy(owned, products)

	byID := make(map[string]int, len(owned))
	for i, p := range owned {
		byID[p.ID] = i
	}
	return &Store{products: owned, byID: byID}
}

// List returns a copy of the full catalog in seed order.
func (s *Store) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// FindByID returns the product with the given identifier.
func (s *Store) FindByID(id string) (Product, bool) {
	if i, ok := s.byID[id]; ok {
		return s.products[i], true
	}
	return Product{}, false
}

// Len reports the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}

// Categories returns the distinct product categories in order of first
// appearance, prefixed with the "All" sentinel.
func (s *Store) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{AllCategories}
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
