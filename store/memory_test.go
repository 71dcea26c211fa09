package store

import (
	"context"
	"testing"
	"time"

	"github.com/storelab/shoprec/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	if _, err := m.Get(ctx, "missing"); !core.IsNotFound(err) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsNotFound(err) {
		t.Errorf("Get() after delete error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "short", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := m.Get(ctx, "short"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := m.Get(ctx, "short"); !core.IsNotFound(err) {
		t.Errorf("Get() after expiry error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v", got)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	// descending by score, like Redis ZREVRANGE
	_ = m.ZAdd(ctx, "hot", 3, "mid")
	_ = m.ZAdd(ctx, "hot", 5, "top")
	_ = m.ZAdd(ctx, "hot", 1, "low")

	got, err := m.ZRange(ctx, "hot", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"top", "mid", "low"}
	if len(got) != len(want) {
		t.Fatalf("ZRange() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ZRange() = %v, want %v", got, want)
		}
	}

	top2, err := m.ZRange(ctx, "hot", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(top2) != 2 || top2[0] != "top" {
		t.Errorf("ZRange(0,1) = %v", top2)
	}

	score, err := m.ZScore(ctx, "hot", "top")
	if err != nil {
		t.Fatalf("ZScore() error = %v", err)
	}
	if score != 5 {
		t.Errorf("ZScore() = %v, want 5", score)
	}

	if _, err := m.ZScore(ctx, "hot", "missing"); !core.IsNotFound(err) {
		t.Errorf("ZScore(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	_ = m.HSet(ctx, "h", "f1", []byte("v1"))
	_ = m.HSet(ctx, "h", "f2", []byte("v2"))

	got, err := m.HGet(ctx, "h", "f1")
	if err != nil {
		t.Fatalf("HGet() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("HGet() = %q, want v1", got)
	}

	all, err := m.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("HGetAll() = %d fields, want 2", len(all))
	}

	if err := m.HDel(ctx, "h", "f1"); err != nil {
		t.Fatalf("HDel() error = %v", err)
	}
	if _, err := m.HGet(ctx, "h", "f1"); !core.IsNotFound(err) {
		t.Errorf("HGet() after HDel error = %v, want NOT_FOUND", err)
	}
}
