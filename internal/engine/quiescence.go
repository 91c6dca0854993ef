package engine

import (
	"sync/atomic"

	"taqi/internal/taqi"
)

const (
	quiesceMaxDepth = 6      // 静态搜索的额外深度上限
	quiesceNodeCap  = 20_000 // 每次顶层搜索静态节点的硬上限
)

// quiescence 叶子不直接吐静态分：只延伸吃子步，带 stand-pat 的
// alpha-beta，避免在吃子中途截断造成的地平线效应。
func (e *Engine) quiescence(pos *taqi.Position, chain *taqi.Chain, qdepth, ply int, alpha, beta int, sc *searchCtx) int {
	atomic.AddInt64(sc.nodes, 1)
	e.qnodes++

	standPat := Evaluate(pos, pos.SideToMove)
	if chain == nil {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}
	if qdepth <= 0 || e.qnodes > quiesceNodeCap || sc.expired() {
		return standPat
	}

	caps := pos.GenerateCaptureMoves(chain)
	if len(caps) == 0 {
		if chain != nil {
			// 链中无延续不该出现（调用方已校验），兜底收尾后评估
			return Evaluate(pos, pos.SideToMove)
		}
		return standPat
	}
	orderMoves(pos, caps)

	best := standPat
	if chain != nil {
		best = -scoreInf // 链中必须走吃子，不能 stand pat
	}
	for _, mv := range caps {
		np, nc, err := pos.ApplyMove(mv, chain)
		if err != nil {
			continue
		}
		var score int
		if nc != nil && len(np.GenerateCaptureMoves(nc)) > 0 {
			score = e.quiescence(np, nc, qdepth-1, ply+1, alpha, beta, sc)
		} else {
			child := np
			if nc != nil {
				child = np.FinalizeChain(nc)
			}
			score = -e.quiescence(child, nil, qdepth-1, ply+1, -beta, -alpha, sc)
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
