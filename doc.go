// Package shoprec 是面向电商柜台的商品推荐工具包（Shop Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - Snapshot-first: 目录按引擎生命周期做一次性内存快照，打分阶段只读、可并发
// - Labels-first: 候选全链路携带来源与解释标签，支撑 UI 角标展示与 explain
// - Node 可扩展: 自定义召回源/过滤器/重排节点即可插拔扩展
package shoprec

import (
	"github.com/storelab/shoprec/engine"
	"github.com/storelab/shoprec/pipeline"
)

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Engine = engine.Engine
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// DefaultLimit 是混合推荐的默认返回条数。
const DefaultLimit = engine.DefaultLimit
