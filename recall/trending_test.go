package recall

import (
	"context"
	"testing"
	"time"

	"github.com/storelab/shoprec/core"
)

func TestTrendingSource_Scoring(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	noJitter := func() float64 { return 0 }

	tests := []struct {
		name    string
		product *core.Product
		want    float64
	}{
		{
			name:    "rating only",
			product: &core.Product{ID: "1", Rating: 4},
			want:    1.2,
		},
		{
			name:    "rating and discount",
			product: &core.Product{ID: "1", Rating: 4, Discount: 50},
			want:    1.2 + 1.0,
		},
		{
			name:    "fresh product gets full recency bonus",
			product: &core.Product{ID: "1", Rating: 4, CreatedAt: now},
			want:    1.2 + 0.2,
		},
		{
			name:    "recency decays linearly over 30 days",
			product: &core.Product{ID: "1", Rating: 4, CreatedAt: now.AddDate(0, 0, -15)},
			want:    1.2 + 0.2*0.5,
		},
		{
			name:    "recency bonus gone after 30 days",
			product: &core.Product{ID: "1", Rating: 4, CreatedAt: now.AddDate(0, 0, -60)},
			want:    1.2,
		},
		{
			name:    "no created-at means no recency term",
			product: &core.Product{ID: "1", Rating: 4},
			want:    1.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &TrendingSource{
				Snapshot: newSnapshot(tt.product),
				Rand:     noJitter,
				Now:      func() time.Time { return now },
			}
			got, err := src.Recall(context.Background(), nil)
			if err != nil {
				t.Fatalf("Recall() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if !almostEqual(got[0].Score, tt.want) {
				t.Errorf("score = %v, want %v", got[0].Score, tt.want)
			}
		})
	}
}

func TestTrendingSource_JitterCannotCloseLargeGaps(t *testing.T) {
	// deterministic gap: (5*0.3 + 50*0.02) - (1*0.3) = 2.2, far beyond the 0.1 jitter range,
	// so the hot item wins on every call no matter what the jitter draws
	hot := &core.Product{ID: "hot", Rating: 5, Discount: 50}
	cold := &core.Product{ID: "cold", Rating: 1}
	src := &TrendingSource{Snapshot: newSnapshot(cold, hot)}

	for i := 0; i < 50; i++ {
		got, err := src.Recall(context.Background(), nil)
		if err != nil {
			t.Fatalf("Recall() error = %v", err)
		}
		if got[0].Product.ID != "hot" {
			t.Fatalf("call %d: order = %v, want hot first", i, ids(got))
		}
	}
}

func TestTrendingSource_JitterMayReorderSmallGaps(t *testing.T) {
	// deterministic gap 0.03 < 0.1: injected jitter flips the order
	a := &core.Product{ID: "a", Rating: 4.1}
	b := &core.Product{ID: "b", Rating: 4.0}

	// give b the bigger jitter draw on this call
	draws := []float64{0.0, 0.9}
	i := 0
	src := &TrendingSource{
		Snapshot: newSnapshot(a, b),
		Rand: func() float64 {
			v := draws[i%len(draws)]
			i++
			return v
		},
	}

	got, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if got[0].Product.ID != "b" {
		t.Errorf("order = %v, want b first with jitter injected", ids(got))
	}
}

func TestTrendingSource_TopK(t *testing.T) {
	src := &TrendingSource{
		Snapshot: newSnapshot(
			&core.Product{ID: "1", Rating: 5},
			&core.Product{ID: "2", Rating: 4},
			&core.Product{ID: "3", Rating: 3},
		),
		TopK: 2,
		Rand: func() float64 { return 0 },
	}

	got, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 2 || got[0].Product.ID != "1" || got[1].Product.ID != "2" {
		t.Errorf("Recall() = %v, want [1 2]", ids(got))
	}
}
