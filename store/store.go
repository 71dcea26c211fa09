package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 和 core.KeyValueStore 接口。
//
// 示例：
//   var st core.Store = NewMemoryStore()
//   var kv core.KeyValueStore = NewMemoryStore()
//
// 本项目中的典型用途：
//   - catalog.StoreCatalog 的目录投影（哈希表）
//   - filter.PurchasedFilter 的用户已购列表
//   - engine 的推荐结果缓存（带 TTL）
