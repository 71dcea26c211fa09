// Package engine 是混合推荐引擎：按上下文挑选召回阶段，合并、去重、按来源权重粗排。
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/filter"
	"github.com/storelab/shoprec/pipeline"
	"github.com/storelab/shoprec/recall"
	"github.com/storelab/shoprec/rerank"
)

// DefaultLimit 是混合推荐的默认返回条数。
const DefaultLimit = 6

// 各阶段在混合结果中的子额度：内容 3、购物车 3、类目 2、热门 2。
// 子额度之和大于 Limit 是有意的：去重后仍有足够候选填满结果。
const (
	defaultContentK  = 3
	defaultCartK     = 3
	defaultCategoryK = 2
	defaultTrendingK = 2
)

// Engine 是推荐引擎实例：持有目录快照与链路配置。
//
// 一次 Recommend 的流程（与上下文字段是否存在无关，组合顺序固定）：
//  1. CurrentProduct 存在 → 内容相似召回，source=content, weight=0.4
//  2. CartItems 非空     → 购物车关联召回，source=cart, weight=0.3
//  3. Category 存在      → 类目召回，source=category, weight=0.2
//  4. 恒定               → 热门召回，source=trending, weight=0.1
//  5. 按上述顺序拼接候选
//  6. 按商品 id 去重，保留拼接顺序中首个出现的（靠前阶段胜出）
//  7. 按来源权重降序稳定排序（同来源保持召回顺序）
//  8. 截断到 limit
//
// 缺失的上下文字段只是跳过对应阶段；单个阶段故障按零贡献处理。
// Recommend 永不返回错误：目录不可用时降级为空结果，由 UI 隐藏推荐位。
//
// 引擎实例可并发使用：打分阶段只读快照，唯一的可变状态是快照的一次性加载。
type Engine struct {
	// Snapshot 商品目录快照（必填）
	Snapshot *catalog.Snapshot

	// Limit 默认返回条数，<=0 时取 DefaultLimit
	Limit int

	// 各阶段子额度，<=0 时取默认值（3/3/2/2）
	ContentK  int
	CartK     int
	CategoryK int
	TrendingK int

	// Complements 购物车互补邻接表；为空时用 recall.DefaultComplements
	Complements map[string][]string

	// Rand 热门召回的抖动来源；为 nil 时用全局随机源。
	// 固定此函数（如注入有种子的生成器）可让整条链路确定性可测
	Rand func() float64

	// Now 热门召回的时钟；为 nil 时用 time.Now
	Now func() time.Time

	// Filters 追加在去重之后的过滤器（黑名单、已购、运营规则等）
	Filters []filter.Filter

	// Rerankers 追加在权重排序之后、截断之前的重排节点（如多样性）
	Rerankers []pipeline.Node

	// Bestsellers 可选的热销榜召回：配置后在热门阶段之前追加一个榜单阶段，
	// 同样打 trending 标（热度类位），榜单条目在去重时优先于抖动出的热门位。
	// 榜单由离线任务写入 Store 的有序集合（见 recall.BestsellerSource）
	Bestsellers   core.KeyValueStore
	BestsellerKey string
	BestsellerK   int

	// Cache 可选的结果缓存；CacheTTL 单位秒（<=0 时不缓存）。
	// 只在注入了固定 Rand 时生效：热门位的抖动是每次调用重新采样的，
	// 抖动未固定时缓存会把一次性的随机排序冻结成稳定结果，因此直接旁路
	Cache    core.Store
	CacheTTL int

	logger zerolog.Logger
}

// New 创建引擎实例，目录首次被访问时懒加载。
func New(snap *catalog.Snapshot) *Engine {
	return &Engine{
		Snapshot: snap,
		logger:   zerolog.Nop(),
	}
}

// WithLogger 设置日志器（默认 Nop）。
func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.logger = logger.With().Str("component", "engine").Logger()
	return e
}

// Recommend 生成混合推荐。limit <= 0 时取 Engine.Limit（默认 6）。
// 永不返回错误；完全失败（目录为空）时返回空列表。
func (e *Engine) Recommend(ctx context.Context, rctx *core.RecommendContext, limit int) []*core.Candidate {
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}
	if limit <= 0 {
		limit = e.Limit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	cacheKey := ""
	if e.Cache != nil && e.CacheTTL > 0 && e.Rand != nil {
		cacheKey = e.cacheKey(rctx, limit)
		if cached := e.checkCache(ctx, cacheKey); cached != nil {
			return cached
		}
	}

	nodes := []pipeline.Node{
		&recall.Fanout{
			Stages: e.stages(rctx),
			Dedup:  true,
			Logger: &e.logger,
		},
	}
	if len(e.Filters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.Filters})
	}
	nodes = append(nodes, &rerank.SourceWeightNode{})
	nodes = append(nodes, e.Rerankers...)
	nodes = append(nodes, &rerank.TopNNode{N: limit})

	p := &pipeline.Pipeline{Nodes: nodes}
	out, err := p.Run(ctx, rctx, nil)
	if err != nil {
		// 链路节点都不返回错误，这里只是兜底
		e.logger.Error().Err(err).Msg("recommend pipeline failed, returning empty")
		return []*core.Candidate{}
	}
	if out == nil {
		out = []*core.Candidate{}
	}

	if cacheKey != "" {
		e.storeCache(ctx, cacheKey, out)
	}
	return out
}

// stages 按上下文组装本次调用的召回阶段（顺序即去重优先级）。
func (e *Engine) stages(rctx *core.RecommendContext) []recall.Stage {
	stages := make([]recall.Stage, 0, 4)

	if rctx.CurrentProduct != nil {
		stages = append(stages, recall.Stage{
			Source: &recall.ContentSource{Snapshot: e.Snapshot, TopK: orDefault(e.ContentK, defaultContentK)},
			Tag:    core.SourceContent,
		})
	}
	if len(rctx.CartItems) > 0 {
		stages = append(stages, recall.Stage{
			Source: &recall.CartSource{
				Snapshot:    e.Snapshot,
				TopK:        orDefault(e.CartK, defaultCartK),
				Complements: e.Complements,
			},
			Tag: core.SourceCart,
		})
	}
	if rctx.Category != "" {
		stages = append(stages, recall.Stage{
			Source: &recall.CategorySource{Snapshot: e.Snapshot, TopK: orDefault(e.CategoryK, defaultCategoryK)},
			Tag:    core.SourceCategory,
		})
	}
	if e.Bestsellers != nil {
		stages = append(stages, recall.Stage{
			Source: &recall.BestsellerSource{
				Snapshot: e.Snapshot,
				Store:    e.Bestsellers,
				Key:      e.BestsellerKey,
				TopK:     orDefault(e.BestsellerK, defaultTrendingK),
			},
			Tag: core.SourceTrending,
		})
	}
	stages = append(stages, recall.Stage{
		Source: &recall.TrendingSource{
			Snapshot: e.Snapshot,
			TopK:     orDefault(e.TrendingK, defaultTrendingK),
			Rand:     e.Rand,
			Now:      e.Now,
		},
		Tag: core.SourceTrending,
	})

	return stages
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// cacheKey 由上下文指纹构成：当前商品、购物车、画像、类目、limit。
func (e *Engine) cacheKey(rctx *core.RecommendContext, limit int) string {
	parts := make([]string, 0, 8)

	if rctx.CurrentProduct != nil {
		parts = append(parts, "p="+rctx.CurrentProduct.ID)
	}
	if len(rctx.CartItems) > 0 {
		ids := make([]string, 0, len(rctx.CartItems))
		for _, it := range rctx.CartItems {
			if it != nil {
				ids = append(ids, it.ID)
			}
		}
		sort.Strings(ids)
		parts = append(parts, "cart="+strings.Join(ids, ","))
	}
	if prefs := rctx.Preferences; prefs != nil {
		fav := append([]string(nil), prefs.FavoriteCategories...)
		sort.Strings(fav)
		parts = append(parts, "fav="+strings.Join(fav, ","))
		if prefs.PriceRange != nil {
			parts = append(parts, fmt.Sprintf("pr=%g-%g", prefs.PriceRange.Min, prefs.PriceRange.Max))
		}
	}
	if rctx.Category != "" {
		parts = append(parts, "cat="+rctx.Category)
	}
	parts = append(parts, fmt.Sprintf("n=%d", limit))

	return "rec:" + strings.Join(parts, "|")
}

func (e *Engine) checkCache(ctx context.Context, key string) []*core.Candidate {
	data, err := e.Cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var out []*core.Candidate
	if json.Unmarshal(data, &out) != nil {
		return nil
	}
	e.logger.Debug().Str("key", key).Msg("recommend cache hit")
	return out
}

func (e *Engine) storeCache(ctx context.Context, key string, out []*core.Candidate) {
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := e.Cache.Set(ctx, key, data, e.CacheTTL); err != nil {
		e.logger.Debug().Str("key", key).Err(err).Msg("recommend cache store failed")
	}
}
