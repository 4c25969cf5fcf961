package blob

import (
	"context"
	"errors"
	"testing"

	"commentbox/internal/errs"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "k"); !errors.Is(err, errs.ErrBlobNotFound) {
		t.Fatalf("want ErrBlobNotFound, got %v", err)
	}

	if err := m.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get: got=%q err=%v", got, err)
	}

	if err := m.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err = m.Get(ctx, "k")
	if err != nil || string(got) != "v2" {
		t.Fatalf("Set must replace: got=%q err=%v", got, err)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()
	if err := m.Set(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got[0] = 'x'

	again, err := m.Get(ctx, "k")
	if err != nil || string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}
