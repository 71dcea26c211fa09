package filter

import (
	"context"
	"sync"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pkg/dsl"
)

// RuleFilter 是运营规则过滤器：用 CEL 表达式描述"什么样的候选要被剔除"。
// 命中规则（表达式求值为 true）的候选会被过滤。
//
// 示例：
//   - `product.price > 10000.0` → 高价商品不进推荐位
//   - `product.category == "art" && product.discount == 0.0` → 无折扣艺术用品不推
//   - `candidate.source == "trending" && product.rating < 3.0` → 低分商品不占热门位
type RuleFilter struct {
	// Expr 是 CEL 规则表达式，见 pkg/dsl 的语法说明
	Expr string

	once       sync.Once
	prg        *dsl.Program
	compileErr error
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if f.Expr == "" || c == nil {
		return false, nil
	}

	// 表达式只编译一次，之后对每个候选重复求值
	f.once.Do(func() {
		f.prg, f.compileErr = dsl.Compile(f.Expr)
	})
	if f.compileErr != nil {
		return false, f.compileErr
	}

	return f.prg.Match(c, rctx)
}
