package recall

import (
	"context"
	"sort"

	"github.com/storelab/shoprec/catalog"
	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pkg/utils"
)

// DefaultComplements 是类目互补邻接表：买了 A 类目的人往往还需要 B 类目。
// 表是对称写开的（notebooks→pens 与 pens→notebooks 各自成行），由运营维护。
var DefaultComplements = map[string][]string{
	core.CategoryNotebooks: {core.CategoryPens, core.CategoryOffice},
	core.CategoryPens:      {core.CategoryNotebooks, core.CategoryPapers},
	core.CategoryArt:       {core.CategoryPapers, core.CategoryOffice},
	core.CategoryOffice:    {core.CategoryPens, core.CategoryPapers},
	core.CategoryPapers:    {core.CategoryPens, core.CategoryOffice},
}

// CartSource 是购物车关联召回："买了这些的人还会要什么"。
//
// 预计算购物车的类目集合与价格区间（min/max/avg），然后对不在车内的商品加性打分：
//   - 类目与车内类目相同 +0.5
//   - 价格落在 [min×0.5, max×2]（闭区间）+0.3
//   - 类目是某个车内类目的互补类目 +0.2，多个车内类目各自命中时叠加
type CartSource struct {
	Snapshot *catalog.Snapshot

	// TopK 返回 TopK 个商品，默认 DefaultTopK
	TopK int

	// Complements 互补邻接表；为空时使用 DefaultComplements
	Complements map[string][]string
}

func (r *CartSource) Name() string { return "recall.cart" }

// cartPriceRange 是购物车价格区间的预计算结果。
type cartPriceRange struct {
	min float64
	max float64
	avg float64
}

func priceRangeOf(items []*core.Product) cartPriceRange {
	pr := cartPriceRange{}
	total := 0.0
	count := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		if count == 0 || it.Price < pr.min {
			pr.min = it.Price
		}
		if count == 0 || it.Price > pr.max {
			pr.max = it.Price
		}
		total += it.Price
		count++
	}
	if count > 0 {
		pr.avg = total / float64(count)
	}
	return pr
}

func (r *CartSource) complements() map[string][]string {
	if r.Complements != nil {
		return r.Complements
	}
	return DefaultComplements
}

func (r *CartSource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Candidate, error) {
	if r.Snapshot == nil || rctx == nil || len(rctx.CartItems) == 0 {
		return nil, nil
	}

	products := r.Snapshot.Products(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	// 车内类目去重，保持加入顺序以保证确定性
	cartCategories := make([]string, 0, len(rctx.CartItems))
	seenCat := make(map[string]bool, len(rctx.CartItems))
	inCart := make(map[string]bool, len(rctx.CartItems))
	for _, it := range rctx.CartItems {
		if it == nil {
			continue
		}
		inCart[it.ID] = true
		if !seenCat[it.Category] {
			seenCat[it.Category] = true
			cartCategories = append(cartCategories, it.Category)
		}
	}

	priceRange := priceRangeOf(rctx.CartItems)
	complements := r.complements()

	type scoredItem struct {
		product *core.Product
		score   float64
		reasons []string
	}
	scores := make([]scoredItem, 0, len(products))

	for _, p := range products {
		if p == nil || inCart[p.ID] {
			// 已经在车里的不再推
			continue
		}

		var score float64
		var reasons []string

		if seenCat[p.Category] {
			score += 0.5
			reasons = append(reasons, "cart_category")
		}

		if p.Price >= priceRange.min*0.5 && p.Price <= priceRange.max*2 {
			score += 0.3
			reasons = append(reasons, "price_band")
		}

		// 互补加成按命中的车内类目叠加，不设上限
		for _, cat := range cartCategories {
			for _, comp := range complements[cat] {
				if comp == p.Category {
					score += 0.2
					reasons = append(reasons, "complement:"+cat)
					break
				}
			}
		}

		scores = append(scores, scoredItem{product: p, score: score, reasons: reasons})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if k := topK(r.TopK); len(scores) > k {
		scores = scores[:k]
	}

	out := make([]*core.Candidate, 0, len(scores))
	for _, s := range scores {
		c := core.NewCandidate(s.product)
		c.Score = s.score
		for _, reason := range s.reasons {
			c.PutLabel("reason", utils.Label{Value: reason, Source: r.Name()})
		}
		out = append(out, c)
	}
	return out, nil
}
