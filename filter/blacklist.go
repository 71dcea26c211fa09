package filter

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/storelab/shoprec/core"
)

// BlacklistFilter 过滤下架/缺货/运营拉黑的商品。
// 黑名单可以是内存列表，也可以从 Store 读取（JSON 数组，运营后台维护）。
type BlacklistFilter struct {
	// ProductIDs 是内存中的黑名单商品 id 列表
	ProductIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store core.Store

	// Key 是 Store 中黑名单的 key，默认 "catalog:blacklist"
	Key string

	once   sync.Once
	cached map[string]bool
}

func (f *BlacklistFilter) Name() string { return "filter.blacklist" }

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if c == nil || c.Product == nil {
		return false, nil
	}

	for _, id := range f.ProductIDs {
		if id == c.Product.ID {
			return true, nil
		}
	}

	if f.Store == nil {
		return false, nil
	}

	// Store 黑名单在过滤器生命周期内只读一次
	f.once.Do(func() {
		f.cached = make(map[string]bool)
		key := f.Key
		if key == "" {
			key = "catalog:blacklist"
		}
		if data, err := f.Store.Get(ctx, key); err == nil {
			var ids []string
			if json.Unmarshal(data, &ids) == nil {
				for _, id := range ids {
					f.cached[id] = true
				}
			}
		}
	})

	return f.cached[c.Product.ID], nil
}
