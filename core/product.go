package core

import "time"

// 内置的商品类目。类目集合由柜台业务决定，保持小而稳定；
// 推荐链路只把类目当作不透明标签，不关心具体语义。
const (
	CategoryNotebooks = "notebooks"
	CategoryPens      = "pens"
	CategoryPapers    = "papers"
	CategoryArt       = "art"
	CategoryOffice    = "office"
)

// Product 是商品目录快照中的只读条目。
// 一次推荐调用内 Product 不可变；快照跨调用可能过期，刷新由调用方重建引擎解决。
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`    // 非负，最小货币单位无关
	Discount    float64   `json:"discount"` // 折扣百分比 [0, 100]，0 表示无折扣
	Rating      float64   `json:"rating"`   // 0 表示无评分
	CreatedAt   time.Time `json:"created_at,omitempty"` // 零值表示无上架时间（不参与新品加权）
}

// HasRating 返回商品是否带有效评分。
func (p *Product) HasRating() bool { return p.Rating > 0 }

// Age 返回商品上架至 now 的天数；无上架时间返回 -1。
func (p *Product) Age(now time.Time) float64 {
	if p.CreatedAt.IsZero() {
		return -1
	}
	return now.Sub(p.CreatedAt).Hours() / 24
}
