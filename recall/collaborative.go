package recall

import (
	"context"
	"sort"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pkg/utils"
)

// defaultPriceRange 是画像未带价格区间时的兜底区间。
var defaultPriceRange = core.PriceRange{Min: 0, Max: 1000}

// CollaborativeSource 是基于用户偏好画像的协同打分召回。
//
// 打分为加性模型，各项独立、互不抵消：
//   - 类目在用户喜欢的类目集合内 +0.4
//   - 价格落在偏好区间（闭区间）内 +0.3
//   - 评分 >= 4 +0.2
//   - 有折扣 +0.1
type CollaborativeSource struct {
	Snapshot *catalog.Snapshot

	// TopK 返回 TopK 个商品，默认 DefaultTopK
	TopK int
}

func (r *CollaborativeSource) Name() string { return "recall.collaborative" }

func (r *CollaborativeSource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Candidate, error) {
	if r.Snapshot == nil || rctx == nil {
		return nil, nil
	}

	products := r.Snapshot.Products(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	// 画像缺失时按空画像处理：无喜欢类目、价格区间用兜底值
	prefs := rctx.Preferences
	priceRange := defaultPriceRange
	if prefs != nil && prefs.PriceRange != nil {
		priceRange = *prefs.PriceRange
	}

	type scoredItem struct {
		product *core.Product
		score   float64
		reasons []string
	}
	scores := make([]scoredItem, 0, len(products))

	for _, p := range products {
		if p == nil {
			continue
		}

		var score float64
		var reasons []string

		if prefs.Favors(p.Category) {
			score += 0.4
			reasons = append(reasons, "favorite_category")
		}
		if priceRange.Contains(p.Price) {
			score += 0.3
			reasons = append(reasons, "price_range")
		}
		if p.Rating >= 4 {
			score += 0.2
			reasons = append(reasons, "high_rating")
		}
		if p.Discount > 0 {
			score += 0.1
			reasons = append(reasons, "discounted")
		}

		scores = append(scores, scoredItem{product: p, score: score, reasons: reasons})
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
		for _, reason := range s.reasons {
			c.PutLabel("reason", utils.Label{Value: reason, Source: r.Name()})
		}
		out = append(out, c)
	}
	return out, nil
}
