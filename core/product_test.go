package core

import (
	"testing"
	"time"
)

func TestProduct_Age(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      float64
	}{
		{name: "ten days old", createdAt: now.AddDate(0, 0, -10), want: 10},
		{name: "today", createdAt: now, want: 0},
		{name: "no created-at", createdAt: time.Time{}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{CreatedAt: tt.createdAt}
			if got := p.Age(now); got != tt.want {
				t.Errorf("Age() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProduct_HasRating(t *testing.T) {
	if (&Product{Rating: 4.5}).HasRating() != true {
		t.Error("rated product reports no rating")
	}
	if (&Product{}).HasRating() != false {
		t.Error("unrated product reports rating")
	}
}

func TestPreferences_Favors(t *testing.T) {
	p := &Preferences{FavoriteCategories: []string{CategoryPens, CategoryArt}}

	if !p.Favors(CategoryPens) {
		t.Error("Favors(pens) = false")
	}
	if p.Favors(CategoryOffice) {
		t.Error("Favors(office) = true")
	}

	var nilPrefs *Preferences
	if nilPrefs.Favors(CategoryPens) {
		t.Error("nil preferences favor something")
	}
}

func TestPriceRange_Contains(t *testing.T) {
	r := PriceRange{Min: 10, Max: 100}

	tests := []struct {
		price float64
		want  bool
	}{
		{price: 10, want: true},
		{price: 100, want: true},
		{price: 55, want: true},
		{price: 9.99, want: false},
		{price: 100.01, want: false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.price); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}
