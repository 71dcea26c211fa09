package recall

import (
	"math"
	"strings"

	"github.com/storelab/shoprec/core"
)

// wordSet 把文本小写化后按空白切词，返回词集合。
func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

// TextSimilarity 计算两段文本的 Jaccard 词重合度：|交集| / |并集|。
// 并集为空（两段都是空白）时相似度为 0。
func TextSimilarity(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)

	intersection := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			intersection++
		}
	}
	union := len(wa) + len(wb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// PriceProximity 计算两个价格的接近度 [0, 1]：1 - |差| / max。
// 两个价格都为 0 时视为完全接近（1）。
func PriceProximity(p1, p2 float64) float64 {
	maxPrice := math.Max(p1, p2)
	if maxPrice <= 0 {
		return 1
	}
	return 1 - math.Abs(p1-p2)/maxPrice
}

// ContentSimilarity 计算两个商品的内容相似度，范围约 [0, 1]：
//   - 同类目 +0.4
//   - 价格接近度 ×0.3
//   - 名称+描述的词重合度 ×0.3
func ContentSimilarity(a, b *core.Product) float64 {
	var sim float64

	if a.Category == b.Category {
		sim += 0.4
	}

	sim += PriceProximity(a.Price, b.Price) * 0.3

	sim += TextSimilarity(
		a.Name+" "+a.Description,
		b.Name+" "+b.Description,
	) * 0.3

	return sim
}
