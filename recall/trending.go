package recall

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
)

// TrendingSource 是热门召回：全局、无上下文依赖的人气代理指标。
//
// 打分：
//   - 评分 ×0.3
//   - 折扣百分比 ×0.02（五折贡献 +1.0）
//   - 新品加成：上架 30 天内线性衰减，0.2 × max(0, 1 - days/30)
//   - 随机抖动 [0, 0.1)：每次调用重新采样，有意让热门位带一点新鲜感，
//     这是多样性机制而非 bug
type TrendingSource struct {
	Snapshot *catalog.Snapshot

	// TopK 返回 TopK 个商品，默认 DefaultTopK
	TopK int

	// Rand 是抖动的随机来源；为 nil 时用 math/rand 全局源。
	// 测试注入固定值即可得到确定性排序；引擎共享实例时注入的函数需要并发安全。
	Rand func() float64

	// Now 用于计算新品加成；为 nil 时用 time.Now。
	Now func() time.Time
}

func (r *TrendingSource) Name() string { return "recall.trending" }

func (r *TrendingSource) random() float64 {
	if r.Rand != nil {
		return r.Rand()
	}
	return rand.Float64()
}

func (r *TrendingSource) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *TrendingSource) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Candidate, error) {
	if r.Snapshot == nil {
		return nil, nil
	}

	products := r.Snapshot.Products(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	now := r.now()

	type scoredItem struct {
		product *core.Product
		score   float64
	}
	scores := make([]scoredItem, 0, len(products))

	for _, p := range products {
		if p == nil {
			continue
		}

		score := p.Rating*0.3 + p.Discount*0.02

		if days := p.Age(now); days >= 0 {
			score += 0.2 * math.Max(0, 1-days/30)
		}

		score += r.random() * 0.1

		scores = append(scores, scoredItem{product: p, score: score})
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
