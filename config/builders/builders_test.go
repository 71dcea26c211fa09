package builders

import (
	"context"
	"testing"

	"github.com/storelab/shoprec/config"
	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pipeline"
)

func TestInitRegistersBuiltinNodes(t *testing.T) {
	supported := config.SupportedTypes()
	want := []string{"filter", "rerank.diversity", "rerank.source_weight", "rerank.topn"}

	for _, typ := range want {
		found := false
		for _, s := range supported {
			if s == typ {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("type %q not registered (have %v)", typ, supported)
		}
	}
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]interface{}{
		"blacklist": []any{"p1"},
		"rules":     []any{`product.price > 100.0`},
	})
	if err != nil {
		t.Fatalf("BuildFilterNode() error = %v", err)
	}

	in := []*core.Candidate{
		core.NewCandidate(&core.Product{ID: "p1", Price: 10}),  // blacklisted
		core.NewCandidate(&core.Product{ID: "p2", Price: 500}), // rule hit
		core.NewCandidate(&core.Product{ID: "p3", Price: 50}),
	}
	got, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 1 || got[0].Product.ID != "p3" {
		t.Errorf("kept %d candidates, want only p3", len(got))
	}
}

func TestFactoryDrivenPipeline(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "test"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "rerank.source_weight"},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 2}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}

	mk := func(id string, src core.Source) *core.Candidate {
		c := core.NewCandidate(&core.Product{ID: id})
		c.Tag(src)
		return c
	}
	in := []*core.Candidate{
		mk("t", core.SourceTrending),
		mk("c", core.SourceContent),
		mk("b", core.SourceCart),
	}

	got, err := p.Run(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := make([]string, 0, len(got))
	for _, c := range got {
		out = append(out, c.Product.ID)
	}
	if len(out) != 2 || out[0] != "c" || out[1] != "b" {
		t.Errorf("pipeline output = %v, want [c b]", out)
	}
}

func TestValidatePipelineConfig_UnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.ltr"}}

	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Error("unknown node type passed validation")
	}
}
