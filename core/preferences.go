package core

// PriceRange 是闭区间价格偏好 [Min, Max]。
type PriceRange struct {
	Min float64
	Max float64
}

// Contains 返回 price 是否落在区间内（闭区间）。
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Preferences 是用户偏好画像：喜欢的类目集合 + 价格区间。
// 画像由边界层组装后作为普通数据传入，引擎不关心它来自账号元数据还是行为统计。
type Preferences struct {
	FavoriteCategories []string

	// PriceRange 为 nil 时按默认区间 [0, 1000] 处理
	PriceRange *PriceRange
}

// Favors 返回类目是否在用户喜欢的类目集合内。
func (p *Preferences) Favors(category string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.FavoriteCategories {
		if c == category {
			return true
		}
	}
	return false
}
