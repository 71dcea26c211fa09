package core

import "github.com/storelab/shoprec/pkg/utils"

// RecommendContext 承载一次推荐调用的全部上下文，由边界层（页面/接口）显式组装。
// 所有字段均可选：缺哪个字段就跳过对应的召回链路，引擎不会从环境状态中隐式取数。
type RecommendContext struct {
	UserID string

	// CurrentProduct 当前浏览的商品（详情页场景），驱动内容相似召回
	CurrentProduct *Product

	// CartItems 当前购物车内的商品（数量与顺序不影响打分），驱动购物车关联召回
	CartItems []*Product

	// Preferences 用户偏好画像，驱动协同打分
	Preferences *Preferences

	// Category 当前类目标签（类目页场景），驱动类目召回
	Category string

	// Params 请求级参数，供自定义 Filter / 规则使用
	Params map[string]any

	// Labels 用户级标签，可驱动链路行为（新客、价格敏感等）
	Labels map[string]utils.Label
}

// InCart 返回 id 对应的商品是否已在购物车中。
func (rctx *RecommendContext) InCart(id string) bool {
	for _, it := range rctx.CartItems {
		if it != nil && it.ID == id {
			return true
		}
	}
	return false
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
