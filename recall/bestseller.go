package recall

import (
	"context"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pkg/utils"
)

// DefaultBestsellersKey 是热销榜在 Store 中的默认有序集合 key。
const DefaultBestsellersKey = "rank:bestsellers"

// BestsellerSource 是热销榜召回：离线任务（销量统计/运营置顶）把商品 id
// 按分数写入 Store 的有序集合，在线按榜单顺序取 TopK 并从快照解析商品。
// 榜单里已下架（不在快照中）的 id 直接跳过。
type BestsellerSource struct {
	Snapshot *catalog.Snapshot
	Store    core.KeyValueStore

	// Key 有序集合 key，默认 DefaultBestsellersKey
	Key string

	// TopK 返回 TopK 个商品，默认 DefaultTopK
	TopK int
}

func (r *BestsellerSource) Name() string { return "recall.bestseller" }

func (r *BestsellerSource) key() string {
	if r.Key != "" {
		return r.Key
	}
	return DefaultBestsellersKey
}

func (r *BestsellerSource) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Candidate, error) {
	if r.Snapshot == nil || r.Store == nil {
		return nil, nil
	}

	products := r.Snapshot.Products(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	k := topK(r.TopK)
	members, err := r.Store.ZRange(ctx, r.key(), 0, int64(k)-1)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	byID := make(map[string]*core.Product, len(products))
	for _, p := range products {
		if p != nil {
			byID[p.ID] = p
		}
	}

	out := make([]*core.Candidate, 0, len(members))
	for _, id := range members {
		p, ok := byID[id]
		if !ok {
			continue
		}
		c := core.NewCandidate(p)
		if score, err := r.Store.ZScore(ctx, r.key(), id); err == nil {
			c.Score = score
		}
		c.PutLabel("reason", utils.Label{Value: "bestseller", Source: r.Name()})
		out = append(out, c)
	}
	return out, nil
}
