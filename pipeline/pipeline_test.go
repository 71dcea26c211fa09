package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/storelab/shoprec/core"
)

type appendNode struct {
	name string
	id   string
	err  error
}

func (n *appendNode) Name() string { return n.name }
func (n *appendNode) Kind() Kind   { return KindPostProcess }

func (n *appendNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.err != nil {
		return nil, n.err
	}
	return append(candidates, core.NewCandidate(&core.Product{ID: n.id})), nil
}

func TestPipeline_RunsNodesInOrder(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&appendNode{name: "n1", id: "a"},
		&appendNode{name: "n2", id: "b"},
	}}

	got, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 || got[0].Product.ID != "a" || got[1].Product.ID != "b" {
		t.Errorf("Run() produced %d candidates in wrong order", len(got))
	}
}

func TestPipeline_StopsOnNodeError(t *testing.T) {
	boom := errors.New("node failed")
	p := &Pipeline{Nodes: []Node{
		&appendNode{name: "n1", id: "a"},
		&appendNode{name: "n2", err: boom},
		&appendNode{name: "n3", id: "c"},
	}}

	_, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want the node error", err)
	}
}

func TestPipeline_Empty(t *testing.T) {
	p := &Pipeline{}
	got, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != nil {
		t.Errorf("Run() = %v, want nil", got)
	}
}
