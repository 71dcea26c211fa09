package rerank

import (
	"context"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pipeline"
)

// Diversity 是一个简单的多样性重排节点：限制每个类目最多出现 MaxPerCategory 个候选，
// 超出的按出现顺序丢弃。混合推荐默认不启用，由配置按场景挂载
// （例如首页推荐位不希望整排都是笔）。
type Diversity struct {
	// MaxPerCategory 每个类目最多保留的候选数；<= 0 时视为 1
	MaxPerCategory int
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	limit := n.MaxPerCategory
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 8)
	out := make([]*core.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c == nil || c.Product == nil {
			continue
		}
		if seen[c.Product.Category] >= limit {
			continue
		}
		seen[c.Product.Category]++
		out = append(out, c)
	}

	return out, nil
}
