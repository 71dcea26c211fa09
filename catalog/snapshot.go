// Package catalog 提供商品目录快照：引擎一个生命周期内最多全量拉取一次。
package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/storelab/shoprec/core"
)

// Snapshot 持有目录的内存快照，供各召回源只读访问。
//
// 语义：
//   - 懒加载 + 幂等：首次访问触发拉取，已加载后 Init 是 no-op
//   - 并发 Init 合并为一次在途拉取（singleflight），避免重复打目录协作方
//   - 拉取失败：记日志、快照保持为空、不向调用方抛错；loaded 不置位，
//     下一次调用会重试拉取
//   - 无后台刷新、无 TTL：需要新数据时由调用方重建引擎实例
type Snapshot struct {
	catalog core.Catalog
	logger  zerolog.Logger

	mu       sync.RWMutex
	products []*core.Product
	loaded   bool

	sf singleflight.Group
}

func NewSnapshot(cat core.Catalog) *Snapshot {
	return &Snapshot{
		catalog: cat,
		logger:  zerolog.Nop(),
	}
}

// WithLogger 设置日志器（默认 Nop）。
func (s *Snapshot) WithLogger(logger zerolog.Logger) *Snapshot {
	s.logger = logger.With().Str("component", "catalog").Logger()
	return s
}

// Init 加载快照；已加载时立即返回。并发调用共享同一次拉取。
func (s *Snapshot) Init(ctx context.Context) {
	if s.Loaded() {
		return
	}

	s.sf.Do("init", func() (any, error) {
		if s.Loaded() {
			return nil, nil
		}
		if s.catalog == nil {
			return nil, nil
		}

		products, err := s.catalog.FetchAllProducts(ctx)
		if err != nil {
			// 目录不可用：快照保持为空，推荐调用降级为空结果
			s.logger.Warn().
				Str("catalog", s.catalog.Name()).
				Err(err).
				Msg("catalog fetch failed, snapshot stays empty")
			return nil, nil
		}

		s.mu.Lock()
		s.products = products
		s.loaded = true
		s.mu.Unlock()

		s.logger.Info().
			Str("catalog", s.catalog.Name()).
			Int("products", len(products)).
			Msg("catalog snapshot loaded")
		return nil, nil
	})
}

// Products 返回快照中的商品列表（未加载时先触发 Init）。
// 返回的 slice 视为只读，调用方不得修改。
func (s *Snapshot) Products(ctx context.Context) []*core.Product {
	s.Init(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Loaded 返回快照是否已成功加载。
func (s *Snapshot) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len 返回快照中的商品数。
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
