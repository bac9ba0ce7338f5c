package orders

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/types"
)

// OrderItem is a line captured at order time. Name and price are frozen
// copies; later catalog changes never touch placed orders.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order is a placed order. Records are immutable once appended.
type Order struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Items           []OrderItem       `json:"items"`
	Status          enums.OrderStatus `json:"status"`
	ShippingAddress types.Address     `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Tax             decimal.Decimal   `json:"tax"`
	Shipping        decimal.Decimal   `json:"shipping"`
	Total           decimal.Decimal   `json:"total"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (o Order) validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id required")
	}
	if !o.Status.IsValid() {
		return fmt.Errorf("order %s has invalid status %q", o.ID, o.Status)
	}
	if !o.Total.Equal(o.Subtotal.Add(o.Shipping).Add(o.Tax)) {
		return fmt.Errorf("order %s totals do not add up: %s != %s + %s + %s",
			o.ID, o.Total, o.Subtotal, o.Shipping, o.Tax)
	}
	return nil
}

// Store holds the order history: the seeded records plus anything appended
// by checkout.
type Store struct {
	mu     sync.Mutex
	orders []Order
	byID   map[string]int
}

// NewStore builds an order store over the given history.
func NewStore(orders []Order) (*Store, error) {
	s := &Store{byID: map[string]int{}}
	for _, o := range orders {
		if err := s.Append(o); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append records a new placed order. The additive total invariant is checked
// on the way in; a violation is a defect in the caller.
func (s *Store) Append(order Order) error {
	if err := order.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[order.ID]; exists {
		return fmt.Errorf("duplicate order id %s", order.ID)
	}
	s.byID[order.ID] = len(s.orders)
	s.orders = append(s.orders, order)
	return nil
}

// Get returns the order with the given identifier.
func (s *Store) Get(id string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[id]; ok {
		return s.orders[i], true
	}
	return Order{}, false
}

// List returns a copy of all orders, oldest first.
func (s *Store) List() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ListByUser returns the orders placed by the given user, oldest first.
func (s *Store) ListByUser(userID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// Summary holds the admin dashboard aggregates over the order history.
type Summary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalOrders   int             `json:"total_orders"`
	PendingOrders int             `json:"pending_orders"`
}

// Summarize computes the dashboard aggregates.
func (s *Store) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{TotalSales: decimal.Zero}
	for _, o := range s.orders {
		summary.TotalSales = summary.TotalSales.Add(o.Total)
		summary.TotalOrders++
		if o.Status == enums.OrderStatusPending {
			summary.PendingOrders++
		}
	}
	return summary
}
