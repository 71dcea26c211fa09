package dsl

import (
	"testing"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pkg/utils"
)

func makeCandidate() *core.Candidate {
	c := core.NewCandidate(&core.Product{
		ID:       "p1",
		Name:     "Blue Pen",
		Category: core.CategoryPens,
		Price:    45,
		Discount: 10,
		Rating:   4.5,
	})
	c.Tag(core.SourceContent)
	c.PutLabel("reason", utils.Label{Value: "same_category", Source: "recall.content"})
	return c
}

func TestProgram_Match(t *testing.T) {
	rctx := &core.RecommendContext{UserID: "u1", Category: core.CategoryPens}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "product field comparison", expr: `product.price < 100.0`, want: true},
		{name: "product field miss", expr: `product.price > 100.0`, want: false},
		{name: "string equality", expr: `product.category == "pens"`, want: true},
		{name: "logical and", expr: `product.discount > 0.0 && product.rating >= 4.0`, want: true},
		{name: "candidate source", expr: `candidate.source == "content"`, want: true},
		{name: "candidate weight", expr: `candidate.weight >= 0.4`, want: true},
		{name: "label value", expr: `labels.reason.value.contains("same_category")`, want: true},
		{name: "context category", expr: `rctx.category == "pens"`, want: true},
		{name: "context user", expr: `rctx.user_id == "someone_else"`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			got, err := prg.Match(makeCandidate(), rctx)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty expression", expr: ""},
		{name: "syntax error", expr: `product.price >`},
		{name: "unknown variable", expr: `warehouse.stock > 0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.expr); err == nil {
				t.Errorf("Compile(%q) succeeded, want error", tt.expr)
			}
		})
	}
}

func TestProgram_NonBooleanResult(t *testing.T) {
	prg, err := Compile(`product.price`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := prg.Match(makeCandidate(), nil); err == nil {
		t.Error("Match() succeeded on non-boolean expression, want error")
	}
}

func TestProgram_Reuse(t *testing.T) {
	// one compiled program evaluates many candidates
	prg, err := Compile(`product.price > 100.0`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	cheap := core.NewCandidate(&core.Product{ID: "a", Price: 50})
	pricey := core.NewCandidate(&core.Product{ID: "b", Price: 500})

	if got, _ := prg.Match(cheap, nil); got {
		t.Error("cheap product matched")
	}
	if got, _ := prg.Match(pricey, nil); !got {
		t.Error("pricey product did not match")
	}
	if prg.Expr() != `product.price > 100.0` {
		t.Errorf("Expr() = %q", prg.Expr())
	}
}
