package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/internal/catalog"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

// SnapshotKey namespaces the ledger's durable state.
const SnapshotKey = "cart-storage"

type catalogReader interface {
	FindByID(id string) (catalog.Product, bool)
}

type snapshotStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) (bool, error)
}

// Line is one cart entry, unique per product identifier. Name, UnitPrice and
// Image are a denormalized snapshot taken at add time; they can drift from
// the live catalog and exist so the cart renders without repeated lookups.
// UnitPrice may be absent in state persisted by older versions, in which case
// reads fall back to the live catalog price.
type Line struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Name      string           `json:"name,omitempty"`
	UnitPrice *decimal.Decimal `json:"price,omitempty"`
	Image     string           `json:"image,omitempty"`
}

// Ledger is the mutable cart state container. It rehydrates from the
// snapshot store at startup and flushes on every mutation.
type Ledger struct {
	mu      sync.Mutex
	lines   []Line
	catalog catalogReader
	store   snapshotStore
	logg    *logger.Logger
}

// NewLedger builds a cart ledger over the provided catalog and snapshot
// store, rehydrating any previously persisted state.
func NewLedger(ctx context.Context, cat catalogReader, store snapshotStore, logg *logger.Logger) (*Ledger, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}

	l := &Ledger{catalog: cat, store: store, logg: logg}

	var persisted []Line
	found, err := store.Load(ctx, SnapshotKey, &persisted)
	if err != nil {
		return nil, fmt.Errorf("rehydrate cart: %w", err)
	}
	if found {
		l.lines = persisted
	}
	return l, nil
}

// Add places quantity units of the product in the cart. An unknown product
// identifier is a silent no-op. An existing line is incremented; a new line
// captures the current name, effective price and first image as its
// snapshot.
func (l *Ledger) Add(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": quantity})
	}

	product, ok := l.catalog.FindByID(productID)
	if !ok {
		if l.logg != nil {
			l.logg.Warn(l.logg.WithField(ctx, "product_id", productID), "cart.add unknown product ignored")
		}
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if line := l.findLocked(productID); line != nil {
		line.Quantity += quantity
		return l.persistLocked(ctx)
	}

	price := product.EffectivePrice()
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	l.lines = append(l.lines, Line{
		ProductID: productID,
		Quantity:  quantity,
		Name:      product.Name,
		UnitPrice: &price,
		Image:     image,
	})
	return l.persistLocked(ctx)
}

// Remove deletes the line for productID if present; otherwise it is a no-op.
func (l *Ledger) Remove(ctx context.Context, productID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.lines[:0]
	removed := false
	for _, line := range l.lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	l.lines = kept
	if !removed {
		return nil
	}
	return l.persistLocked(ctx)
}

// UpdateQuantity sets the line's quantity to exactly quantity. Zero or
// negative quantities remove the line. Unknown lines are a no-op.
func (l *Ledger) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return l.Remove(ctx, productID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.findLocked(productID)
	if line == nil {
		return nil
	}
	line.Quantity = quantity
	return l.persistLocked(ctx)
}

// Clear empties the ledger unconditionally.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = nil
	return l.persistLocked(ctx)
}

// Lines returns a copy of the current cart contents.
func (l *Ledger) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// IsEmpty reports whether the cart holds no lines.
func (l *Ledger) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines) == 0
}

// Subtotal sums unit price times quantity across all lines. Lines whose
// snapshot lacks a price fall back to the live catalog effective price; a
// product that vanished from the catalog contributes nothing.
func (l *Ledger) Subtotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, line := range l.lines {
		price := decimal.Zero
		switch {
		case line.UnitPrice != nil:
			price = *line.UnitPrice
		default:
			if product, ok := l.catalog.FindByID(line.ProductID); ok {
				price = product.EffectivePrice()
			}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (l *Ledger) findLocked(productID string) *Line {
	for i := range l.lines {
		if l.lines[i].ProductID == productID {
			return &l.lines[i]
		}
	}
	return nil
}

func (l *Ledger) persistLocked(ctx context.Context) error {
	if err := l.store.Save(ctx, SnapshotKey, l.lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}
	return nil
}
