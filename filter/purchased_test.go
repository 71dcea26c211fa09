package filter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/store"
)

func TestPurchasedFilter(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()
	ctx := context.Background()

	data, _ := json.Marshal([]string{"bought1", "bought2"})
	if err := st.Set(ctx, "user:purchased:u1", data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f := &PurchasedFilter{Store: st}

	tests := []struct {
		name   string
		userID string
		id     string
		want   bool
	}{
		{name: "purchased product filtered", userID: "u1", id: "bought1", want: true},
		{name: "unpurchased product kept", userID: "u1", id: "fresh", want: false},
		{name: "other user unaffected", userID: "u2", id: "bought1", want: false},
		{name: "anonymous user skipped", userID: "", id: "bought1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{UserID: tt.userID}
			got, err := f.ShouldFilter(ctx, rctx, cand(tt.id))
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPurchasedFilter_CorruptListFailsOpen(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()
	ctx := context.Background()

	if err := st.Set(ctx, "user:purchased:u1", []byte("{broken")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f := &PurchasedFilter{Store: st}
	got, err := f.ShouldFilter(ctx, &core.RecommendContext{UserID: "u1"}, cand("p1"))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if got {
		t.Error("corrupt purchased list should not filter anything")
	}
}

func TestPurchasedFilter_CustomKeyPrefix(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()
	ctx := context.Background()

	data, _ := json.Marshal([]string{"p1"})
	if err := st.Set(ctx, "orders:done:u1", data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f := &PurchasedFilter{Store: st, KeyPrefix: "orders:done"}
	got, err := f.ShouldFilter(ctx, &core.RecommendContext{UserID: "u1"}, cand("p1"))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Error("custom key prefix not honored")
	}
}
