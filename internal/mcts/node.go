package mcts

import (
	"sync"

	"taqi/internal/taqi"
)

const (
	StateUnevaluated = iota
	StateEvaluating
	StateExpanded
)

type NodeStats struct {
	Visits     int64
	WeightSum  float64
	UtilityAvg float64
}

// MCTSNode 的子节点在展开时才创建；Moves 和 Children 下标对齐。
// UtilityAvg 统一取白方视角，选择时按走子方翻转。
type MCTSNode struct {
	mu sync.Mutex

	Move     taqi.Move
	Parent   *MCTSNode
	Moves    []taqi.Move
	Children []*MCTSNode
	Priors   []float64
	State    int32 // Atomic

	Stats         NodeStats
	VirtualLosses int32 // Atomic

	IsTerminal      bool
	TerminalUtility float64
}

func NewNode(mv taqi.Move, parent *MCTSNode) *MCTSNode {
	return &MCTSNode{
		Move:   mv,
		Parent: parent,
		State:  StateUnevaluated,
	}
}

func (n *MCTSNode) RecordPlayout(utility float64, weight float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.Stats.Visits++
	n.Stats.WeightSum += weight

	delta := utility - n.Stats.UtilityAvg
	n.Stats.UtilityAvg += delta * weight / n.Stats.WeightSum
}

// GetUtilityForSelection 把白方视角的均值换算到 pla 的视角
func (n *MCTSNode) GetUtilityForSelection(pla taqi.Side) float64 {
	avg := n.Stats.UtilityAvg
	if pla == taqi.White {
		return avg
	}
	return -avg
}
