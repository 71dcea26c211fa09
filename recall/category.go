package recall

import (
	"context"
	"sort"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
)

// CategorySource 是类目召回：取同类目商品，按 评分 + 折扣×0.1 做次级排序。
// 上下文带 CurrentProduct 时排除其自身（类目页底部"同类推荐"的典型场景）。
type CategorySource struct {
	Snapshot *catalog.Snapshot

	// TopK 返回 TopK 个商品，默认 DefaultTopK
	TopK int
}

func (r *CategorySource) Name() string { return "recall.category" }

func (r *CategorySource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Candidate, error) {
	if r.Snapshot == nil || rctx == nil || rctx.Category == "" {
		return nil, nil
	}

	excludeID := ""
	if rctx.CurrentProduct != nil {
		excludeID = rctx.CurrentProduct.ID
	}

	products := r.Snapshot.Products(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	type scoredItem struct {
		product *core.Product
		score   float64
	}
	scores := make([]scoredItem, 0)

	for _, p := range products {
		if p == nil || p.Category != rctx.Category {
			continue
		}
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		scores = append(scores, scoredItem{
			product: p,
			score:   p.Rating + p.Discount*0.1,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if k := topK(r.TopK); len(scores) > k {
		scores = scores[:k]
	}

	out := make([]*core.Candidate, 0, len(scores))
	for _, s := range scores {
		c := core.NewCandidate(s.product)
		c.Score = s.score
		out = append(out, c)
	}
	return out, nil
}
