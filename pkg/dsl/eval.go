// Package dsl 是运营规则的表达式解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，类型安全、高性能、线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 商品字段：product.price < 500.0 / product.category == "pens"
//   - 候选字段：candidate.source == "trending" / candidate.weight >= 0.3
//   - 逻辑组合：product.discount > 0.0 && product.rating >= 4.0
//   - 标签：labels.reason != null / labels.reason.value.contains("same_category")
//   - 上下文：rctx.category == "art"
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/storelab/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("product", cel.DynType),
		cel.Variable("candidate", cel.DynType),
		cel.Variable("labels", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	if celEnv == nil && err == nil {
		err = fmt.Errorf("cel env not initialized")
	}
	return celEnv, err
}

// Program 是编译后的规则程序，可对多个候选重复求值。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Match 对单个候选求值，返回布尔结果。
// 注意：访问不存在的 key 时 CEL 会报错，存在性检查请使用 labels.key != null。
func (p *Program) Match(c *core.Candidate, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(c, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
func buildInput(c *core.Candidate, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{})
	product := map[string]interface{}{}
	candidate := map[string]interface{}{}

	if c != nil {
		for k, v := range c.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
		}
		candidate = map[string]interface{}{
			"source": string(c.Source),
			"weight": c.Weight,
			"score":  c.Score,
		}
		if c.Product != nil {
			product = map[string]interface{}{
				"id":       c.Product.ID,
				"name":     c.Product.Name,
				"category": c.Product.Category,
				"price":    c.Product.Price,
				"discount": c.Product.Discount,
				"rating":   c.Product.Rating,
			}
		}
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		rctxMap = map[string]interface{}{
			"user_id":  rctx.UserID,
			"category": rctx.Category,
			"params":   rctx.Params,
		}
	}

	return map[string]interface{}{
		"product":   product,
		"candidate": candidate,
		"labels":    labels,
		"rctx":      rctxMap,
	}
}
