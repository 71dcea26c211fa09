package core

import "github.com/storelab/shoprec/pkg/utils"

// Source 标识候选商品由哪条召回链路产出，用于 UI 角标展示与去重优先级。
type Source string

const (
	SourceContent  Source = "content"  // 内容相似召回
	SourceCart     Source = "cart"     // 购物车关联召回
	SourceCategory Source = "category" // 类目召回
	SourceTrending Source = "trending" // 热门召回
)

// Weight 返回该来源在混合推荐中的静态权重。
// 权重是"本次调用"的属性而非商品属性：在候选被并入混合结果时赋值，
// 只用于混合后的粗排（来源优先级排序），不是归一化的相关性分。
func (s Source) Weight() float64 {
	switch s {
	case SourceContent:
		return 0.4
	case SourceCart:
		return 0.3
	case SourceCategory:
		return 0.2
	case SourceTrending:
		return 0.1
	}
	return 0
}

// Candidate 是推荐链路中的统一承载结构：商品、来源、权重、解释标签。
// Score 是召回源内部得分，仅用于排序与 explain，混合排序不使用它。
type Candidate struct {
	Product *Product
	Source  Source
	Weight  float64
	Score   float64
	Labels  map[string]utils.Label
}

func NewCandidate(p *Product) *Candidate {
	return &Candidate{
		Product: p,
		Labels:  make(map[string]utils.Label),
	}
}

// Tag 标记候选的来源，并按来源赋静态权重。重复 Tag 不覆盖首次来源。
func (c *Candidate) Tag(src Source) {
	if c.Source != "" {
		return
	}
	c.Source = src
	c.Weight = src.Weight()
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}
