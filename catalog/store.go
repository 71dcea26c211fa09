package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/storelab/shoprec/core"
)

// DefaultProductsKey 是目录投影在 Store 中的默认哈希表 key。
const DefaultProductsKey = "catalog:products"

// StoreCatalog 是基于 Store 的商品目录：商品以 JSON 形式存放在哈希表中（field = 商品 id）。
// 写入端通常是后台任务或管理端同步作业；本包只提供简单的查询接口
// （全量读取、按 id、按类目、单条写入/删除），不涉及持久化 schema 设计。
type StoreCatalog struct {
	Store core.KeyValueStore
	Key   string // 默认 DefaultProductsKey
}

func (c *StoreCatalog) Name() string { return "catalog.store" }

func (c *StoreCatalog) key() string {
	if c.Key != "" {
		return c.Key
	}
	return DefaultProductsKey
}

// FetchAllProducts 全量读取目录。单条 JSON 解析失败时跳过该条目，不拖垮整个快照。
func (c *StoreCatalog) FetchAllProducts(ctx context.Context) ([]*core.Product, error) {
	if c.Store == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUnavailable, "catalog: store not configured")
	}

	fields, err := c.Store.HGetAll(ctx, c.key())
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}

	out := make([]*core.Product, 0, len(fields))
	for _, raw := range fields {
		var p core.Product
		if json.Unmarshal(raw, &p) != nil || p.ID == "" {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

// Put 写入/覆盖单个商品。
func (c *StoreCatalog) Put(ctx context.Context, p *core.Product) error {
	if c.Store == nil {
		return core.ErrStoreNotSupported
	}
	if p == nil || p.ID == "" {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: product id required")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("catalog put: %w", err)
	}
	return c.Store.HSet(ctx, c.key(), p.ID, raw)
}

// Delete 删除单个商品。
func (c *StoreCatalog) Delete(ctx context.Context, id string) error {
	if c.Store == nil {
		return core.ErrStoreNotSupported
	}
	return c.Store.HDel(ctx, c.key(), id)
}

// GetByID 按 id 读取单个商品。
func (c *StoreCatalog) GetByID(ctx context.Context, id string) (*core.Product, error) {
	if c.Store == nil {
		return nil, core.ErrStoreNotSupported
	}
	raw, err := c.Store.HGet(ctx, c.key(), id)
	if err != nil {
		return nil, err
	}
	var p core.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("catalog get %s: %w", id, err)
	}
	return &p, nil
}

// GetByCategory 按类目读取商品（全量读取后过滤，目录规模小，无需二级索引）。
func (c *StoreCatalog) GetByCategory(ctx context.Context, category string) ([]*core.Product, error) {
	all, err := c.FetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Product, 0)
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
