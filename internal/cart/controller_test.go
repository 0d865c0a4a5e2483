package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
)

type stubStore struct {
	raw     []byte
	saveErr error
	saves   int
}

func (s *stubStore) Load(context.Context) []Item {
	items, err := DecodeItems(s.raw)
	if err != nil {
		return []Item{}
	}
	return items
}

func (s *stubStore) Save(_ context.Context, items []Item) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := EncodeItems(items)
	if err != nil {
		return err
	}
	s.raw = raw
	s.saves++
	return nil
}

func (s *stubStore) Clear(context.Context) error {
	s.raw = nil
	return nil
}

func sequentialIDs() IDGenerator {
	n := 0
	return func() ItemID {
		n++
		return ItemID(fmt.Sprintf("item-%d", n))
	}
}

func newTestController(store Store, badge Badge) *Controller {
	return NewController(store, ControllerOptions{Badge: badge, NewID: sequentialIDs()})
}

func TestAddToCartEmptyCartCreatesItem(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	badge := &CountBadge{}
	ctrl := newTestController(store, badge)

	item, err := ctrl.AddToCart(context.Background(), ProductInput{Name: "Vestido Rojo", Price: 250})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Qty != 1 || item.ID != "item-1" {
		t.Fatalf("unexpected item %+v", item)
	}

	items := store.Load(context.Background())
	if len(items) != 1 || items[0].Name != "Vestido Rojo" || items[0].Price != 250 || items[0].Qty != 1 {
		t.Fatalf("unexpected persisted list %+v", items)
	}
	if n, ok := badge.Count(); !ok || n != 1 {
		t.Fatalf("expected badge 1, got %d (set=%v)", n, ok)
	}
}

func TestAddToCartSamePairMerges(t *testing.T) {
	t.Parallel()

	store := &stubStore{raw: []byte(`[{"id":"x","name":"Vestido Rojo","price":250,"qty":1}]`)}
	badge := &CountBadge{}
	ctrl := newTestController(store, badge)

	item, err := ctrl.AddToCart(context.Background(), ProductInput{Name: "Vestido Rojo", Price: 250})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != "x" || item.Qty != 2 {
		t.Fatalf("expected merged item x with qty 2, got %+v", item)
	}
	items := store.Load(context.Background())
	if len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("expected a single item with qty 2, got %+v", items)
	}
	if n, _ := badge.Count(); n != 2 {
		t.Fatalf("expected badge 2, got %d", n)
	}
}

func TestAddToCartDistinctPricesStaySeparate(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	ctrl := newTestController(store, nil)
	ctx := context.Background()

	for _, in := range []ProductInput{{Name: "A", Price: 10}, {Name: "A", Price: 10.5}, {Name: "A", Price: 10.001}} {
		if _, err := ctrl.AddToCart(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if items := store.Load(ctx); len(items) != 3 {
		t.Fatalf("expected 3 distinct items, got %+v", items)
	}

	if _, err := ctrl.AddToCart(ctx, ProductInput{Name: "A", Price: 10.00}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := store.Load(ctx)
	if len(items) != 3 || items[0].Qty != 2 {
		t.Fatalf("expected 10 and 10.00 to merge, got %+v", items)
	}
}

func TestAddToCartNameIsCaseSensitive(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	ctrl := newTestController(store, nil)
	ctx := context.Background()

	for _, name := range []string{"Blusa", "blusa", "Blusa "} {
		if _, err := ctrl.AddToCart(ctx, ProductInput{Name: name, Price: 99}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if items := store.Load(ctx); len(items) != 3 {
		t.Fatalf("expected names to be compared exactly, got %+v", items)
	}
}

func TestAddToCartQuantitiesMatchAdditionCounts(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	ctrl := newTestController(store, nil)
	ctx := context.Background()

	adds := []ProductInput{
		{Name: "Vestido Rojo", Price: 250},
		{Name: "Blusa Lino", Price: 120},
		{Name: "Vestido Rojo", Price: 250},
		{Name: "Falda", Price: 180.5, Style: "casual"},
		{Name: "Vestido Rojo", Price: 250},
		{Name: "Blusa Lino", Price: 120},
	}
	want := map[string]int{"Vestido Rojo": 3, "Blusa Lino": 2, "Falda": 1}
	for _, in := range adds {
		if _, err := ctrl.AddToCart(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items := store.Load(ctx)
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	order := []string{"Vestido Rojo", "Blusa Lino", "Falda"}
	for i, it := range items {
		if it.Name != order[i] {
			t.Fatalf("expected append order %v, got %+v", order, items)
		}
		if it.Qty != want[it.Name] {
			t.Fatalf("expected qty %d for %s, got %d", want[it.Name], it.Name, it.Qty)
		}
	}

	if n := ctrl.UpdateCartCount(ctx); n != len(adds) {
		t.Fatalf("expected count %d, got %d", len(adds), n)
	}
}

func TestAddToCartCopiesStyleAndSrc(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	ctrl := newTestController(store, nil)
	in := ProductInput{Name: "Falda", Price: 180, Style: "casual", Src: "img/falda.jpg"}
	if _, err := ctrl.AddToCart(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := store.Load(context.Background())
	if items[0].Style != "casual" || items[0].Src != "img/falda.jpg" {
		t.Fatalf("style/src not copied: %+v", items[0])
	}
}

func TestAddToCartRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	ctrl := newTestController(store, nil)

	for _, in := range []ProductInput{{Name: "", Price: 10}, {Name: "A", Price: -1}} {
		_, err := ctrl.AddToCart(context.Background(), in)
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
	if store.saves != 0 {
		t.Fatalf("invalid input must not touch the store")
	}
}

func TestAddToCartSaveFailure(t *testing.T) {
	t.Parallel()

	store := &stubStore{saveErr: errors.New("disk full")}
	badge := &CountBadge{}
	ctrl := newTestController(store, badge)

	_, err := ctrl.AddToCart(context.Background(), ProductInput{Name: "A", Price: 1})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if _, set := badge.Count(); set {
		t.Fatalf("badge must not update when the save fails")
	}
}

func TestUpdateCartCountOnEmptyAndCorruptCart(t *testing.T) {
	t.Parallel()

	badge := &CountBadge{}
	ctrl := newTestController(&stubStore{raw: []byte("{broken")}, badge)

	if n := ctrl.UpdateCartCount(context.Background()); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
	if n, ok := badge.Count(); !ok || n != 0 {
		t.Fatalf("expected badge to render 0, got %d (set=%v)", n, ok)
	}
	if n := ctrl.UpdateCartCount(context.Background()); n != 0 {
		t.Fatalf("expected idempotent 0, got %d", n)
	}
}

func TestSummaryTotals(t *testing.T) {
	t.Parallel()

	store := &stubStore{raw: []byte(`[{"id":"a","name":"Vestido Rojo","price":250,"qty":2},{"id":"b","name":"Blusa","price":0.1,"qty":3}]`)}
	ctrl := newTestController(store, nil)

	sum := ctrl.Summary(context.Background())
	if sum.Count != 5 {
		t.Fatalf("expected count 5, got %d", sum.Count)
	}
	if sum.Total != 500.3 {
		t.Fatalf("expected total 500.3, got %v", sum.Total)
	}
	if sum.FormattedTotal != "Bs 500,3" {
		t.Fatalf("unexpected formatted total %q", sum.FormattedTotal)
	}
}

func TestClearResetsBadge(t *testing.T) {
	t.Parallel()

	store := &stubStore{raw: []byte(`[{"id":"a","name":"A","price":1,"qty":4}]`)}
	badge := &CountBadge{}
	ctrl := newTestController(store, badge)

	if err := ctrl.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctrl.Items(context.Background())) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if n, _ := badge.Count(); n != 0 {
		t.Fatalf("expected badge reset to 0, got %d", n)
	}
}

func TestNewItemIDIsTimeOrderedUUID(t *testing.T) {
	t.Parallel()

	a, b := NewItemID(), NewItemID()
	if a == b {
		t.Fatalf("expected unique ids")
	}
	if len(a) != 36 || string(a)[14] != '7' {
		t.Fatalf("expected a version 7 uuid, got %s", a)
	}
}
