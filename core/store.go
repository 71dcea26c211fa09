package core

import "context"

// Store 是存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 领域层不依赖基础设施层，避免循环依赖
//
// 使用场景：
//   - 商品目录投影：catalog.StoreCatalog 从 Store 读取商品 JSON
//   - 用户已购列表：filter.PurchasedFilter
//   - 推荐结果缓存：engine 的可选 result cache
//
// 实现：
//   - store.MemoryStore
//   - store.RedisStore
type Store interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value，ttl 单位秒（省略或 <=0 表示不过期）
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（减少网络往返）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，支持更丰富的 KV 操作。
//
// 扩展功能：
//   - 有序集合（SortedSet）：热销榜、运营置顶位等离线任务写入的榜单
//   - 哈希表（Hash）：商品目录投影按 id 存放
//
// 如果后端不支持某些操作，可返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序获取有序集合成员（TopN）
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// HGet 读取哈希表字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入哈希表字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个哈希表
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// HDel 删除哈希表字段
	HDel(ctx context.Context, key, field string) error
}
