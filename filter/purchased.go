package filter

import (
	"context"
	"encoding/json"

	"github.com/storelab/shoprec/core"
)

// PurchasedFilter 过滤用户已购买过的商品：文具店不反复推已经买走的东西。
// 已购列表按用户存放在 Store 中（JSON 数组），由订单侧在成交后写入。
// 实际 key 为 {KeyPrefix}:{UserID}。
type PurchasedFilter struct {
	Store core.Store

	// KeyPrefix 默认 "user:purchased"
	KeyPrefix string
}

func (f *PurchasedFilter) Name() string { return "filter.purchased" }

func (f *PurchasedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if f.Store == nil || rctx == nil || rctx.UserID == "" {
		return false, nil
	}
	if c == nil || c.Product == nil {
		return false, nil
	}

	keyPrefix := f.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "user:purchased"
	}

	data, err := f.Store.Get(ctx, keyPrefix+":"+rctx.UserID)
	if err != nil {
		// 读不到已购列表时放行，保证推荐可用性
		return false, nil
	}

	var ids []string
	if json.Unmarshal(data, &ids) != nil {
		return false, nil
	}
	for _, id := range ids {
		if id == c.Product.ID {
			return true, nil
		}
	}
	return false, nil
}
