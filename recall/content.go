package recall

import (
	"context"
	"sort"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
)

// ContentSource 是内容相似召回：以当前浏览的商品为参照，
// 按类目/价格/文案三个维度的相似度推"看了又看"。
//
// 核心思想："用户正在看某个商品，推荐与它长得像的其他商品"
type ContentSource struct {
	Snapshot *catalog.Snapshot

	// TopK 返回 TopK 个商品，默认 DefaultTopK
	TopK int
}

func (r *ContentSource) Name() string { return "recall.content" }

func (r *ContentSource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Candidate, error) {
	if r.Snapshot == nil || rctx == nil || rctx.CurrentProduct == nil {
		return nil, nil
	}

	target := rctx.CurrentProduct
	products := r.Snapshot.Products(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	type scoredItem struct {
		product *core.Product
		score   float64
	}
	scores := make([]scoredItem, 0, len(products))

	for _, p := range products {
		if p == nil || p.ID == target.ID {
			// 自身不参与"看了又看"
			continue
		}
		scores = append(scores, scoredItem{
			product: p,
			score:   ContentSimilarity(target, p),
		})
	}

	// 稳定排序：同分保持目录顺序，保证两次调用结果一致
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
