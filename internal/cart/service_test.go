package cart

import (
	"context"
	"testing"
)

type mapFactory struct {
	stores map[string]*stubStore
}

func (f *mapFactory) ForKey(key string) Store {
	if s, ok := f.stores[key]; ok {
		return s
	}
	s := &stubStore{}
	f.stores[key] = s
	return s
}

func (f *mapFactory) Backend() string { return "stub" }

func TestNewServiceValidatesParams(t *testing.T) {
	if _, err := NewService(ServiceParams{StorageKey: "roxi_cart_v1"}); err == nil {
		t.Fatal("expected missing factory error")
	}
	if _, err := NewService(ServiceParams{Stores: &mapFactory{stores: map[string]*stubStore{}}, StorageKey: " "}); err == nil {
		t.Fatal("expected missing storage key error")
	}
}

func TestServiceScopesStorageKeyByCartID(t *testing.T) {
	factory := &mapFactory{stores: map[string]*stubStore{}}
	svc, err := NewService(ServiceParams{Stores: factory, StorageKey: "roxi_cart_v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := svc.StorageKey(""); got != "roxi_cart_v1" {
		t.Fatalf("unexpected bare key %q", got)
	}
	if got := svc.StorageKey("abc"); got != "roxi_cart_v1:abc" {
		t.Fatalf("unexpected scoped key %q", got)
	}

	ctx := context.Background()
	if _, err := svc.Cart("abc", nil).AddToCart(ctx, ProductInput{Name: "Vestido Rojo", Price: 250}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := svc.Cart("other", nil).UpdateCartCount(ctx); n != 0 {
		t.Fatalf("expected carts to be isolated, got %d", n)
	}
	if n := svc.Cart("abc", nil).UpdateCartCount(ctx); n != 1 {
		t.Fatalf("expected 1 item in cart abc, got %d", n)
	}
	if got := svc.Cart("abc", nil).Summary(ctx).FormattedTotal; got != "Bs 250" {
		t.Fatalf("expected default formatter, got %q", got)
	}
}
