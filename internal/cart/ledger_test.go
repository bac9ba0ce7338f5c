package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/internal/catalog"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
)

type stubCatalog struct {
	products map[string]catalog.Product
}

func (s *stubCatalog) FindByID(id string) (catalog.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

type memorySnapshots struct {
	data  map[string]string
	saves int
}

func (m *memorySnapshots) Save(_ context.Context, key string, value any) error {
	if m.data == nil {
		m.data = map[string]string{}
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = string(payload)
	m.saves++
	return nil
}

func (m *memorySnapshots) Load(_ context.Context, key string, dest any) (bool, error) {
	payload, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(payload), dest)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testCatalog() *stubCatalog {
	headphones := catalog.Product{
		ID:     "1",
		Name:   "Premium Wireless Headphones",
		Price:  dec("299.99"),
		Images: []string{"https://example.com/1.jpg"},
	}
	discounted := dec("249.99")
	headphones.DiscountPrice = &discounted

	bottle := catalog.Product{
		ID:     "5",
		Name:   "Stainless Steel Water Bottle",
		Price:  dec("29.99"),
		Images: []string{"https://example.com/5.jpg"},
	}

	return &stubCatalog{products: map[string]catalog.Product{
		"1": headphones,
		"5": bottle,
	}}
}

func newTestLedger(t *testing.T) (*Ledger, *memorySnapshots) {
	t.Helper()
	snaps := &memorySnapshots{}
	ledger, err := NewLedger(context.Background(), testCatalog(), snaps, nil)
	if err != nil {
		t.Fatalf("NewLedger returned error: %v", err)
	}
	return ledger, snaps
}

func TestAddMergesLinesPerProduct(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Add(ctx, "1", 2); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := ledger.Add(ctx, "1", 3); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	lines := ledger.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line per product, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddSnapshotsEffectivePrice(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if err := ledger.Add(context.Background(), "1", 1); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	line := ledger.Lines()[0]
	if line.UnitPrice == nil || !line.UnitPrice.Equal(dec("249.99")) {
		t.Fatalf("expected discounted snapshot price, got %v", line.UnitPrice)
	}
	if line.Name != "Premium Wireless Headphones" {
		t.Fatalf("unexpected snapshot name %q", line.Name)
	}
	if line.Image != "https://example.com/1.jpg" {
		t.Fatalf("unexpected snapshot image %q", line.Image)
	}
}

func TestAddUnknownProductIsSilentNoop(t *testing.T) {
	ledger, snaps := newTestLedger(t)

	if err := ledger.Add(context.Background(), "missing", 1); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if !ledger.IsEmpty() {
		t.Fatal("expected cart to stay empty")
	}
	if snaps.saves != 0 {
		t.Fatalf("no-op should not persist, saw %d saves", snaps.saves)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.Add(context.Background(), "1", 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !ledger.IsEmpty() {
		t.Fatal("rejected add should not touch the cart")
	}
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Add(ctx, "1", 4); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := ledger.UpdateQuantity(ctx, "1", 2); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}

	if got := ledger.Lines()[0].Quantity; got != 2 {
		t.Fatalf("expected absolute set to 2, got %d", got)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Add(ctx, "1", 2); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := ledger.UpdateQuantity(ctx, "1", 0); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}

	if !ledger.IsEmpty() {
		t.Fatal("expected line removal at quantity zero")
	}
	if !ledger.Subtotal().IsZero() {
		t.Fatalf("expected zero subtotal, got %s", ledger.Subtotal())
	}
}

func TestUpdateQuantityUnknownLineIsNoop(t *testing.T) {
	ledger, snaps := newTestLedger(t)

	if err := ledger.UpdateQuantity(context.Background(), "missing", 3); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if snaps.saves != 0 {
		t.Fatalf("no-op should not persist, saw %d saves", snaps.saves)
	}
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	ledger, _ := newTestLedger(t)
	if err := ledger.Remove(context.Background(), "missing"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestClearEmptiesLedger(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Add(ctx, "1", 1); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := ledger.Add(ctx, "5", 2); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := ledger.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	if !ledger.IsEmpty() {
		t.Fatal("expected empty cart after Clear")
	}
}

func TestSubtotalUsesSnapshotPrice(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if err := ledger.Add(context.Background(), "1", 2); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if got := ledger.Subtotal(); !got.Equal(dec("499.98")) {
		t.Fatalf("expected 499.98, got %s", got)
	}
}

func TestSubtotalFallsBackToLiveCatalogPrice(t *testing.T) {
	// State persisted by an older version may lack the price snapshot.
	snaps := &memorySnapshots{}
	legacy := []Line{{ProductID: "1", Quantity: 2}}
	if err := snaps.Save(context.Background(), SnapshotKey, legacy); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	ledger, err := NewLedger(context.Background(), testCatalog(), snaps, nil)
	if err != nil {
		t.Fatalf("NewLedger returned error: %v", err)
	}

	if got := ledger.Subtotal(); !got.Equal(dec("499.98")) {
		t.Fatalf("expected live-catalog fallback total 499.98, got %s", got)
	}
}

func TestSubtotalSkipsVanishedProducts(t *testing.T) {
	snaps := &memorySnapshots{}
	legacy := []Line{{ProductID: "gone", Quantity: 3}}
	if err := snaps.Save(context.Background(), SnapshotKey, legacy); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	ledger, err := NewLedger(context.Background(), testCatalog(), snaps, nil)
	if err != nil {
		t.Fatalf("NewLedger returned error: %v", err)
	}

	if got := ledger.Subtotal(); !got.IsZero() {
		t.Fatalf("expected vanished product to contribute nothing, got %s", got)
	}
}

func TestMutationsPersistAndRehydrate(t *testing.T) {
	snaps := &memorySnapshots{}
	ctx := context.Background()

	first, err := NewLedger(ctx, testCatalog(), snaps, nil)
	if err != nil {
		t.Fatalf("NewLedger returned error: %v", err)
	}
	if err := first.Add(ctx, "1", 2); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := first.Add(ctx, "5", 1); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if snaps.saves != 2 {
		t.Fatalf("expected a flush per mutation, saw %d", snaps.saves)
	}

	second, err := NewLedger(ctx, testCatalog(), snaps, nil)
	if err != nil {
		t.Fatalf("NewLedger returned error: %v", err)
	}
	if len(second.Lines()) != 2 {
		t.Fatalf("expected rehydrated cart with 2 lines, got %d", len(second.Lines()))
	}
	if got := second.Subtotal(); !got.Equal(dec("529.97")) {
		t.Fatalf("expected rehydrated subtotal 529.97, got %s", got)
	}
}
