package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/internal/cart"
	"github.com/luxemarket/storefront-backend/internal/orders"
	"github.com/luxemarket/storefront-backend/internal/pricing"
	"github.com/luxemarket/storefront-backend/pkg/clock"
	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
	"github.com/luxemarket/storefront-backend/pkg/types"
)

// ShippingForm carries the shipping step input.
type ShippingForm struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

func (f ShippingForm) complete() bool {
	fields := []string{
		f.FirstName, f.LastName, f.Email, f.Street,
		f.City, f.State, f.PostalCode, f.Country, f.Phone,
	}
	for _, v := range fields {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func (f ShippingForm) address() types.Address {
	return types.Address{
		Street:     f.Street,
		City:       f.City,
		State:      f.State,
		PostalCode: f.PostalCode,
		Country:    f.Country,
		IsDefault:  false,
	}
}

// PaymentForm carries the payment step input. Card details are only
// inspected for presence; nothing is charged.
type PaymentForm struct {
	CardName       string `json:"card_name" validate:"required"`
	CardNumber     string `json:"card_number" validate:"required"`
	ExpDate        string `json:"exp_date" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
	SameAsShipping bool   `json:"same_as_shipping"`
}

func (f PaymentForm) complete() bool {
	for _, v := range []string{f.CardName, f.CardNumber, f.ExpDate, f.CVV} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// State is a read-only view of where the sequencer currently is.
type State struct {
	Step        enums.CheckoutStep `json:"step"`
	Shipping    ShippingForm       `json:"shipping"`
	OrderNumber string             `json:"order_number,omitempty"`
}

type cartLedger interface {
	Lines() []cart.Line
	Subtotal() decimal.Decimal
	IsEmpty() bool
	Clear(ctx context.Context) error
}

type orderAppender interface {
	Append(order orders.Order) error
}

// Sequencer walks a single checkout session through its steps:
// shipping, then payment, then confirmation. Payment may step back to
// shipping; confirmation is terminal until Reset.
type Sequencer struct {
	mu          sync.Mutex
	step        enums.CheckoutStep
	shipping    ShippingForm
	orderNumber string

	cart    cartLedger
	orders  orderAppender
	policy  pricing.Policy
	sleeper clock.Sleeper
	delay   time.Duration
	rng     *rand.Rand
	now     func() time.Time
	logg    *logger.Logger
}

// NewSequencer builds a checkout sequencer starting at the shipping step.
func NewSequencer(
	ledger cartLedger,
	store orderAppender,
	policy pricing.Policy,
	sleeper clock.Sleeper,
	delay time.Duration,
	rng *rand.Rand,
	logg *logger.Logger,
) (*Sequencer, error) {
	if ledger == nil {
		return nil, fmt.Errorf("cart ledger is required")
	}
	if store == nil {
		return nil, fmt.Errorf("order store is required")
	}
	if sleeper == nil {
		return nil, fmt.Errorf("sleeper is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Sequencer{
		step:    enums.CheckoutStepShipping,
		cart:    ledger,
		orders:  store,
		policy:  policy,
		sleeper: sleeper,
		delay:   delay,
		rng:     rng,
		now:     time.Now,
		logg:    logg,
	}, nil
}

// State reports the current step and captured shipping details.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{Step: s.step, Shipping: s.shipping, OrderNumber: s.orderNumber}
}

// SubmitShipping captures the shipping form and advances to payment.
// The cart must not be empty and every form field must be filled.
func (s *Sequencer) SubmitShipping(ctx context.Context, form ShippingForm) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != enums.CheckoutStepShipping {
		return State{}, errors.New(errors.CodeStateConflict,
			fmt.Sprintf("cannot submit shipping details from the %s step", s.step))
	}
	if s.cart.IsEmpty() {
		return State{}, errors.New(errors.CodeStateConflict, "cart is empty")
	}
	if !form.complete() {
		return State{}, errors.New(errors.CodeValidation, "all shipping fields are required")
	}

	s.shipping = form
	s.step = enums.CheckoutStepPayment
	return State{Step: s.step, Shipping: s.shipping}, nil
}

// SubmitPayment simulates order placement: after the configured
// processing delay an order record is appended for the given user, the
// cart is cleared and the sequencer lands on confirmation.
func (s *Sequencer) SubmitPayment(ctx context.Context, form PaymentForm, userID string) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != enums.CheckoutStepPayment {
		return orders.Order{}, errors.New(errors.CodeStateConflict,
			fmt.Sprintf("cannot place an order from the %s step", s.step))
	}
	if s.cart.IsEmpty() {
		return orders.Order{}, errors.New(errors.CodeStateConflict, "cart is empty")
	}
	if !form.complete() {
		return orders.Order{}, errors.New(errors.CodeValidation, "all payment fields are required")
	}

	if err := s.sleeper.Sleep(ctx, s.delay); err != nil {
		return orders.Order{}, errors.Wrap(errors.CodeInternal, err, "order placement interrupted")
	}

	order := s.buildOrderLocked(userID)
	if err := s.orders.Append(order); err != nil {
		return orders.Order{}, errors.Wrap(errors.CodeInternal, err, "failed to record order")
	}
	if err := s.cart.Clear(ctx); err != nil {
		return orders.Order{}, errors.Wrap(errors.CodeInternal, err, "failed to clear cart")
	}

	s.orderNumber = order.ID
	s.step = enums.CheckoutStepConfirmation
	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_number": order.ID,
		"total":        order.Total.StringFixed(2),
	})
	s.logg.Info(ctx, "order placed")
	return order, nil
}

func (s *Sequencer) buildOrderLocked(userID string) orders.Order {
	lines := s.cart.Lines()
	items := make([]orders.OrderItem, 0, len(lines))
	for _, line := range lines {
		price := decimal.Zero
		if line.UnitPrice != nil {
			price = *line.UnitPrice
		}
		items = append(items, orders.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     price,
			Quantity:  line.Quantity,
		})
	}

	quote := s.policy.Quote(s.cart.Subtotal()).Rounded()
	return orders.Order{
		ID:              fmt.Sprintf("ORD-%d", 100000+s.rng.Intn(900000)),
		UserID:          userID,
		Items:           items,
		Status:          enums.OrderStatusPending,
		ShippingAddress: s.shipping.address(),
		PaymentMethod:   "Credit Card",
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
		CreatedAt:       s.now().UTC(),
	}
}

// Back returns from payment to shipping. No other step can go back.
func (s *Sequencer) Back() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != enums.CheckoutStepPayment {
		return State{}, errors.New(errors.CodeStateConflict,
			fmt.Sprintf("cannot go back from the %s step", s.step))
	}
	s.step = enums.CheckoutStepShipping
	return State{Step: s.step, Shipping: s.shipping}, nil
}

// Reset abandons the session and starts over at shipping. Leaving the
// confirmation page goes through here; there is no forward transition
// out of it.
func (s *Sequencer) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step = enums.CheckoutStepShipping
	s.shipping = ShippingForm{}
	s.orderNumber = ""
	return State{Step: s.step}
}
