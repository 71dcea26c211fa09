package recall

import (
	"context"

	"github.com/storelab/shoprec/core"
)

// DefaultTopK 是单独调用召回源时的默认返回条数。
// 混合推荐（engine）会按阶段显式传入更小的子额度。
const DefaultTopK = 4

// Source 表示一个可复用的召回源（内容相似/协同/热门/购物车关联/类目）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
//
// 约定：
//   - 上下文缺少该源所需的字段时返回 (nil, nil)，不是错误
//   - 目录快照为空时返回 (nil, nil)，永不 panic
//   - 返回的候选已按源内得分降序排好并截断到 TopK
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error)
}

// topK 返回生效的截断条数。
func topK(k int) int {
	if k <= 0 {
		return DefaultTopK
	}
	return k
}
