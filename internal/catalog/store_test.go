package catalog

import "testing"

func TestSeededStoreLoadsCatalog(t *testing.T) {
	store, err := Seeded()
	if err != nil {
		t.Fatalf("Seeded returned error: %v", err)
	}
	if store.Len() != 8 {
		t.Fatalf("expected 8 seeded products, got %d", store.Len())
	}

	p, ok := store.FindByID("1")
	if !ok {
		t.Fatal("expected product 1 in seed")
	}
	if p.Name != "Premium Wireless Headphones" {
		t.Fatalf("unexpected product name %q", p.Name)
	}
	if got := p.EffectivePrice().String(); got != "249.99" {
		t.Fatalf("expected discounted effective price, got %s", got)
	}
	if len(p.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(p.Reviews))
	}
}

func TestEffectivePriceNeverExceedsBase(t *testing.T) {
	store, err := Seeded()
	if err != nil {
		t.Fatalf("Seeded returned error: %v", err)
	}
	for _, p := range store.List() {
		if p.EffectivePrice().GreaterThan(p.Price) {
			t.Fatalf("product %s effective price %s exceeds base %s", p.ID, p.EffectivePrice(), p.Price)
		}
		if p.DiscountPrice == nil && !p.EffectivePrice().Equal(p.Price) {
			t.Fatalf("product %s without discount should price at base", p.ID)
		}
		if p.DiscountPrice != nil && p.EffectivePrice().Equal(p.Price) {
			t.Fatalf("product %s with discount should undercut base", p.ID)
		}
	}
}

func TestFindByIDUnknown(t *testing.T) {
	store := NewStore(nil)
	if _, ok := store.FindByID("nope"); ok {
		t.Fatal("expected lookup miss on empty store")
	}
}

func TestCategoriesDistinctWithAllSentinel(t *testing.T) {
	store, err := Seeded()
	if err != nil {
		t.Fatalf("Seeded returned error: %v", err)
	}

	got := store.Categories()
	want := []string{"All", "Electronics", "Wearables", "Furniture", "Home & Kitchen", "Fashion"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore([]Product{{ID: "1", Name: "Thing"}})
	list := store.List()
	list[0].Name = "Mutated"

	p, _ := store.FindByID("1")
	if p.Name != "Thing" {
		t.Fatal("store contents should be isolated from returned slices")
	}
}
