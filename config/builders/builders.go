// Package builders 注册内置 Node 的配置构建器。
// 在入口处 import _ "github.com/storelab/shoprec/config/builders" 触发注册。
package builders

import (
	"github.com/storelab/shoprec/config"
	"github.com/storelab/shoprec/filter"
	"github.com/storelab/shoprec/pipeline"
	"github.com/storelab/shoprec/pkg/conv"
	"github.com/storelab/shoprec/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.source_weight", BuildSourceWeightNode)
}

// BuildFilterNode 从配置构建过滤节点。支持的配置：
//
//	blacklist: [p1, p2]         # 商品 id 黑名单
//	rules:                      # CEL 运营规则，命中即过滤
//	  - 'product.price > 10000.0'
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filters := make([]filter.Filter, 0)

	if ids := conv.SliceAnyToString(cfg["blacklist"]); len(ids) > 0 {
		filters = append(filters, &filter.BlacklistFilter{ProductIDs: ids})
	}
	for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
		filters = append(filters, &filter.RuleFilter{Expr: expr})
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		MaxPerCategory: conv.ConfigGetInt(cfg, "max_per_category", 1),
	}, nil
}

func BuildSourceWeightNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rerank.SourceWeightNode{}, nil
}
