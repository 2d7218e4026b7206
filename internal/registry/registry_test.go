// internal/registry/registry_test.go
//
// Unit-tests for the signed-key registry and its memory backend.
//
// Context
// -------
// The registry's contract is small but load-bearing: a Register→Resolve
// roundtrip must return the same spec, distinct registrations must mint
// distinct keys, and every flavour of bad key — never registered, expired,
// tampered — must read as a miss rather than an error.
//
// Workflow
// --------
// Each test builds an isolated MemStore + Signer; the expiry test swaps
// the store's clock forward instead of sleeping.

package registry

import (
	"context"
	"testing"
	"time"
)

func newTestRegistry(t *testing.T) (*Registry, *MemStore) {
	t.Helper()
	signer, err := NewSigner([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	store := NewMemStore(64)
	return New(store, signer, "select2_", time.Minute, nil), store
}

func TestRegisterResolve_Roundtrip(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	spec := Spec{
		Widget:       "widget.Auto",
		DataView:     "select2_central_json",
		Table:        "person",
		LabelColumn:  "name",
		SearchFields: []string{"name", "email"},
		MaxResults:   25,
	}

	key, err := reg.Register(ctx, spec)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok, err := reg.Resolve(ctx, key)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !ok {
		t.Fatal("Resolve: miss for a just-registered key")
	}
	if got.Table != spec.Table || got.Widget != spec.Widget || len(got.SearchFields) != 2 {
		t.Fatalf("Resolve: spec mangled: %+v", got)
	}
}

func TestRegister_DistinctKeys(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	k1, err := reg.Register(ctx, Spec{Widget: "widget.Heavy", DataView: "a"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	k2, err := reg.Register(ctx, Spec{Widget: "widget.Heavy", DataView: "a"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if k1 == k2 {
		t.Fatal("two registrations produced the same key")
	}
}

func TestResolve_UnknownKeyIsMiss(t *testing.T) {
	reg, _ := newTestRegistry(t)

	// A validly signed token whose id was never stored.
	id, _ := reg.signer.NewID()
	token, _ := reg.signer.Sign(id)

	_, ok, err := reg.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error for unknown key: %v", err)
	}
	if ok {
		t.Fatal("Resolve: hit for a never-registered key")
	}
}

func TestResolve_TamperedTokenIsMiss(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	key, err := reg.Register(ctx, Spec{Widget: "widget.Heavy", DataView: "a"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Flip one character of the token.
	tampered := []byte(key)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}

	_, ok, err := reg.Resolve(ctx, string(tampered))
	if err != nil {
		t.Fatalf("Resolve returned error for tampered token: %v", err)
	}
	if ok {
		t.Fatal("Resolve: tampered token resolved")
	}

	for _, garbage := range []string{"", "not-base64!!", "AAAA"} {
		if _, ok, _ := reg.Resolve(ctx, garbage); ok {
			t.Fatalf("Resolve: garbage token %q resolved", garbage)
		}
	}
}

func TestResolve_ExpiredEntryIsMiss(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := context.Background()

	key, err := reg.Register(ctx, Spec{Widget: "widget.Heavy", DataView: "a"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Fast-forward past the TTL.
	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, ok, err := reg.Resolve(ctx, key)
	if err != nil {
		t.Fatalf("Resolve returned error for expired key: %v", err)
	}
	if ok {
		t.Fatal("Resolve: expired entry resolved")
	}
}

func TestMemStore_EvictsBeyondCapacity(t *testing.T) {
	store := NewMemStore(2)
	ctx := context.Background()

	_ = store.SetWithTTL(ctx, "a", []byte("1"), time.Minute)
	_ = store.SetWithTTL(ctx, "b", []byte("2"), time.Minute)
	_ = store.SetWithTTL(ctx, "c", []byte("3"), time.Minute)

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	if _, err := store.Get(ctx, "a"); err != ErrKeyNotFound {
		t.Fatalf("oldest entry survived eviction: err = %v", err)
	}
	if _, err := store.Get(ctx, "c"); err != nil {
		t.Fatalf("newest entry evicted: %v", err)
	}
}

func TestSigner_VerifyRejectsForeignKey(t *testing.T) {
	s1, _ := NewSigner([]byte("0123456789abcdef0123456789abcdef"))
	s2, _ := NewSigner([]byte("fedcba9876543210fedcba9876543210"))

	id, err := s1.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	token, err := s1.Sign(id)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if got, ok := s1.Verify(token); !ok || got != id {
		t.Fatalf("Verify with own key failed: id=%q ok=%v", got, ok)
	}
	if _, ok := s2.Verify(token); ok {
		t.Fatal("Verify accepted a token signed with a different key")
	}
}
