package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/pkg/config"
)

// displayScale is the currency precision used everywhere totals are shown.
const displayScale = 2

// Policy carries the fixed checkout constants: the free-shipping threshold,
// the flat shipping fee below it, and the tax rate.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// PolicyFromConfig lifts the configured pricing constants into a policy.
func PolicyFromConfig(cfg config.PricingConfig) Policy {
	return Policy{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
	}
}

// DefaultPolicy returns the storefront's stock policy: free shipping strictly
// above 100, flat 15 fee otherwise, 8% tax.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.NewFromInt(15),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Quote is a computed order summary. Total always equals
// subtotal + shipping + tax.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Quote derives shipping, tax and total from the given subtotal. Shipping is
// waived only when the subtotal strictly exceeds the threshold, so a subtotal
// of exactly 100 still pays the flat fee. Values are unrounded; use Rounded
// for display.
func (p Policy) Quote(subtotal decimal.Decimal) Quote {
	shipping := p.ShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(p.TaxRate)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// Rounded returns the quote at display precision. Total is recomputed from
// the rounded parts so the additive invariant survives rounding.
func (q Quote) Rounded() Quote {
	subtotal := q.Subtotal.Round(displayScale)
	shipping := q.Shipping.Round(displayScale)
	tax := q.Tax.Round(displayScale)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// DiscountPercent returns the integer display percentage saved when a product
// is discounted from base to discounted. A non-positive base yields zero.
func DiscountPercent(base, discounted decimal.Decimal) int {
	if base.Sign() <= 0 {
		return 0
	}
	pct := base.Sub(discounted).
		Div(base).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(pct.IntPart())
}
