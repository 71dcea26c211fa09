package rerank

import (
	"context"
	"sort"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pipeline"
)

// SourceWeightNode 按来源静态权重降序排序（content 0.4 > cart 0.3 > category 0.2 > trending 0.1）。
//
// 注意这是"来源优先级"的粗排，不是按召回源内部得分的精排：
// 权重是来源常量，同一来源内部的候选保持召回时的相对顺序（稳定排序）。
// 召回源返回的已经是排好序的列表，源内得分没有归一化，不能跨源比较。
type SourceWeightNode struct{}

func (n *SourceWeightNode) Name() string {
	return "rerank.source_weight"
}

func (n *SourceWeightNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *SourceWeightNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) <= 1 {
		return candidates, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
	return candidates, nil
}
