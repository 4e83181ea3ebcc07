package history

import (
	"context"
	"testing"
)

func TestStore_NilPoolIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	if store.Enabled() {
		t.Error("Enabled() = true with nil pool, want false")
	}
	if err := store.Init(ctx); err != nil {
		t.Errorf("Init() error = %v, want nil", err)
	}
	if err := store.Record(ctx, Run{Tool: "column_prediction"}); err != nil {
		t.Errorf("Record() error = %v, want nil", err)
	}
	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Errorf("Recent() error = %v, want nil", err)
	}
	if runs != nil {
		t.Errorf("Recent() = %v, want nil", runs)
	}
}

func TestStore_NilStoreIsSafe(t *testing.T) {
	var store *Store
	if store.Enabled() {
		t.Error("Enabled() on nil store = true, want false")
	}
	if err := store.Record(context.Background(), Run{Tool: "parser"}); err != nil {
		t.Errorf("Record() on nil store error = %v, want nil", err)
	}
}
