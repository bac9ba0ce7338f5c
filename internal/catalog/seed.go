package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed_products.json
var seedProducts []byte

// Seeded returns a store loaded with the embedded product dataset.
func Seeded() (*Store, error) {
	var products []Product
	if err := json.Unmarshal(seedProducts, &products); err != nil {
		return nil, fmt.Errorf("decode product seed: %w", err)
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product seed contains record without id")
		}
		if p.Price.Sign() <= 0 {
			return nil, fmt.Errorf("product %s has non-positive price", p.ID)
		}
		if p.DiscountPrice != nil && !p.DiscountPrice.LessThan(p.Price) {
			return nil, fmt.Errorf("product %s discount must undercut base price", p.ID)
		}
		if len(p.Images) == 0 {
			return nil, fmt.Errorf("product %s has no images", p.ID)
		}
	}
	return NewStore(products), nil
}
