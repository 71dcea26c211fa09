package rerank

import (
	"context"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个候选。
// 通常作为链路的最后一个节点，限制返回结果数量。
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	// 如果 N <= 0，则返回所有候选（不截断）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.N <= 0 {
		return candidates, nil
	}
	if len(candidates) <= n.N {
		return candidates, nil
	}
	return candidates[:n.N], nil
}
