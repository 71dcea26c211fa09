package recall

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/storelab/shoprec/core"
	"github.com/storelab/shoprec/pipeline"
)

// Stage 把一个召回源和它在混合结果中的来源标识绑定。
// Tag 非空时，该阶段的候选会被打上 source 与对应的静态权重。
type Stage struct {
	Source Source
	Tag    core.Source
}

// Fanout 是一个 Recall Node：并发执行多个召回阶段，并按阶段声明顺序合并结果。
//
// 与完成顺序无关的确定性合并：每个阶段的结果先落到自己的槽位，
// 全部结束后再按 Stages 顺序拼接，因此去重的"先到先得"优先级
// 由阶段顺序决定，而不是由 goroutine 调度决定。
//
// 单个阶段出错或 panic 时按零贡献处理（记日志、不中断其他阶段），
// 一个坏掉的召回源不会拖垮整次推荐。
type Fanout struct {
	Stages []Stage

	// Dedup 为 true 时按商品 id 去重，保留拼接顺序中首个出现的候选
	Dedup bool

	// Timeout 是每个阶段的超时时间（0 表示不限制）
	Timeout time.Duration

	// Logger 可选；nil 时静默
	Logger *zerolog.Logger
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Stages) == 0 {
		return nil, nil
	}

	slots := make([][]*core.Candidate, len(n.Stages))
	eg := &errgroup.Group{}

	for i, stage := range n.Stages {
		if stage.Source == nil {
			continue
		}
		slot := i
		s := stage

		eg.Go(func() error {
			items, err := n.runStage(ctx, s.Source, rctx)
			if err != nil {
				// 零贡献，不中断其他阶段
				n.logStageError(s.Source.Name(), err)
				return nil
			}
			if s.Tag != "" {
				for _, c := range items {
					if c != nil {
						c.Tag(s.Tag)
					}
				}
			}
			slots[slot] = items
			return nil
		})
	}

	// 阶段永不返回 error，这里的 Wait 只做同步
	_ = eg.Wait()

	var all []*core.Candidate
	for _, items := range slots {
		all = append(all, items...)
	}

	if !n.Dedup {
		return all, nil
	}
	return mergeFirst(all), nil
}

// runStage 执行单个阶段，panic 转为 error（ScorerFault 策略）。
func (n *Fanout) runStage(
	ctx context.Context,
	src Source,
	rctx *core.RecommendContext,
) (items []*core.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = core.NewDomainError(core.ModuleRecall, core.ErrorCodeInternalError,
				fmt.Sprintf("recall %s panic: %v", src.Name(), r))
		}
	}()

	recallCtx := ctx
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	return src.Recall(recallCtx, rctx)
}

func (n *Fanout) logStageError(source string, err error) {
	if n.Logger == nil {
		return
	}
	n.Logger.Warn().
		Str("source", source).
		Err(err).
		Msg("recall stage failed, contributing nothing")
}

// mergeFirst 按商品 id 去重，保留第一个出现的（拼接顺序靠前的阶段胜出）。
// 重复候选的 Labels 合并到存活者上，保留全部解释信息。
func mergeFirst(all []*core.Candidate) []*core.Candidate {
	seen := make(map[string]*core.Candidate, len(all))
	out := make([]*core.Candidate, 0, len(all))
	for _, c := range all {
		if c == nil || c.Product == nil {
			continue
		}
		if old, ok := seen[c.Product.ID]; ok {
			for k, v := range c.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[c.Product.ID] = c
		out = append(out, c)
	}
	return out
}
