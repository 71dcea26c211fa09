package core

import "context"

// Catalog 是商品目录协作方的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog/store）实现
//   - 引擎每个实例最多全量拉取一次，拉取失败由快照层降级处理
//
// 实现：
//   - catalog.Static 内存目录（测试/原型）
//   - catalog.StoreCatalog 基于 Store 的目录（Memory/Redis）
type Catalog interface {
	// Name 返回目录后端名称（用于日志）
	Name() string

	// FetchAllProducts 全量读取商品列表
	FetchAllProducts(ctx context.Context) ([]*Product, error)
}
