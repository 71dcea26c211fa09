package config

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/engine"
	"github.com/storelab/shoprec/filter"
	"github.com/storelab/shoprec/pkg/dsl"
	"github.com/storelab/shoprec/rerank"
	"github.com/storelab/shoprec/store"
)

// Config 是引擎装配的顶层配置（YAML）。
//
// 示例：
//
//	catalog:
//	  type: redis            # redis / store（外部注入）/ static（测试）
//	  key: catalog:products
//	  redis:
//	    addr: localhost:6379
//	    db: 0
//	engine:
//	  limit: 6
//	  cache_ttl: 300         # 结果缓存需要 seed 非 0 配合，否则不启用
//	  seed: 42               # 固定热门抖动，0 表示真随机
//	  bestsellers_key: rank:bestsellers
//	  blacklist: [p9]
//	  rules:
//	    - 'product.price > 10000.0'
//	  diversity: 2           # 每类目最多保留条数，0 不启用
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Engine  EngineConfig  `yaml:"engine"`
}

type CatalogConfig struct {
	Type  string      `yaml:"type"` // redis / store / static
	Key   string      `yaml:"key"`
	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

type EngineConfig struct {
	Limit     int   `yaml:"limit"`
	ContentK  int   `yaml:"content_k"`
	CartK     int   `yaml:"cart_k"`
	CategoryK int   `yaml:"category_k"`
	TrendingK int   `yaml:"trending_k"`
	CacheTTL  int   `yaml:"cache_ttl"`
	Seed      int64 `yaml:"seed"`

	Complements map[string][]string `yaml:"complements"`
	Blacklist   []string            `yaml:"blacklist"`
	Rules       []string            `yaml:"rules"`
	Diversity   int                 `yaml:"diversity"`

	// BestsellersKey 非空时启用热销榜召回（有序集合 key，离线任务维护）
	BestsellersKey string `yaml:"bestsellers_key"`
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Build 按配置装配引擎。catalog.type=redis 时自动建连。
func (c *Config) Build() (*engine.Engine, error) {
	switch c.Catalog.Type {
	case "redis":
		if c.Catalog.Redis.Addr == "" {
			return nil, fmt.Errorf("catalog.redis.addr required")
		}
		st, err := store.NewRedisStore(c.Catalog.Redis.Addr, c.Catalog.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c.BuildWithStore(st)
	case "store":
		return nil, fmt.Errorf("catalog.type=store requires BuildWithStore")
	case "static", "":
		return nil, fmt.Errorf("catalog.type=static requires BuildWithCatalog")
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", c.Catalog.Type)
	}
}

// BuildWithStore 用外部注入的 Store 装配引擎（目录投影、热销榜与结果缓存共用同一个 Store）。
// 结果缓存要求 seed 非 0：抖动未固定时缓存会冻结随机排序，引擎侧会旁路，这里干脆不挂。
func (c *Config) BuildWithStore(st core.KeyValueStore) (*engine.Engine, error) {
	cat := &catalog.StoreCatalog{Store: st, Key: c.Catalog.Key}
	e, err := c.BuildWithCatalog(cat)
	if err != nil {
		return nil, err
	}
	if c.Engine.CacheTTL > 0 && c.Engine.Seed != 0 {
		e.Cache = st
		e.CacheTTL = c.Engine.CacheTTL
	}
	if c.Engine.BestsellersKey != "" {
		e.Bestsellers = st
		e.BestsellerKey = c.Engine.BestsellersKey
	}
	return e, nil
}

// BuildWithCatalog 用任意目录协作方装配引擎。
func (c *Config) BuildWithCatalog(cat core.Catalog) (*engine.Engine, error) {
	e := engine.New(catalog.NewSnapshot(cat))

	e.Limit = c.Engine.Limit
	e.ContentK = c.Engine.ContentK
	e.CartK = c.Engine.CartK
	e.CategoryK = c.Engine.CategoryK
	e.TrendingK = c.Engine.TrendingK
	e.Complements = c.Engine.Complements

	if c.Engine.Seed != 0 {
		e.Rand = SeededRand(c.Engine.Seed)
	}

	if len(c.Engine.Blacklist) > 0 {
		e.Filters = append(e.Filters, &filter.BlacklistFilter{ProductIDs: c.Engine.Blacklist})
	}
	for _, expr := range c.Engine.Rules {
		// RuleFilter 本身延迟编译；这里先行编译一次，让表达式语法错误在装配期报出
		if _, err := dsl.Compile(expr); err != nil {
			return nil, fmt.Errorf("rule %q: %w", expr, err)
		}
		e.Filters = append(e.Filters, &filter.RuleFilter{Expr: expr})
	}

	if c.Engine.Diversity > 0 {
		e.Rerankers = append(e.Rerankers, &rerank.Diversity{MaxPerCategory: c.Engine.Diversity})
	}

	return e, nil
}

// SeededRand 返回带种子的并发安全随机函数，用于固定热门召回的抖动。
func SeededRand(seed int64) func() float64 {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return rng.Float64()
	}
}
