package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one immutable catalog record. The store owns the canonical list;
// nothing mutates a product after seeding.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Images        []string         `json:"images"`
	Category      string           `json:"category"`
	Tags          []string         `json:"tags"`
	Rating        float64          `json:"rating"`
	Reviews       []Review         `json:"reviews"`
	Stock         int              `json:"stock"`
	Featured      bool             `json:"featured"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Review is a customer rating attached to its parent product.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// EffectivePrice returns the discount price when one is set, otherwise the
// base price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
