package engine

import (
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"taqi/internal/taqi"
)

const scoreInf = 1_000_000_000

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply）
	TimeLimit time.Duration // 时间上限（0 表示不限制）
	MaxNodes  int64         // 节点预算（0 表示不限制）
}

// 搜索结果
type SearchResult struct {
	BestMove taqi.Move
	HasMove  bool
	Score    int // 走子方视角
	Depth    int // 实际完成的深度
	Nodes    int64
	TimeUsed time.Duration
	PV       []taqi.Move
}

// searchCtx 一次顶层搜索共享的预算；链延续不换边也要数节点，
// 所以终止界 = 配置预算 + 一次递归的开销。
type searchCtx struct {
	deadline time.Time
	maxNodes int64
	nodes    *int64
}

func (sc *searchCtx) expired() bool {
	if sc.maxNodes > 0 && atomic.LoadInt64(sc.nodes) >= sc.maxNodes {
		return true
	}
	return !sc.deadline.IsZero() && time.Now().After(sc.deadline)
}

// Search 迭代加深搜索。chain 非 nil 表示从连跳中途恢复搜索
//（锁定起点、上一跳方向、已跳格子都由 chain 携带）。
// 某一深度没在截止前跑完时，保留上一个完成深度的结果。
func (e *Engine) Search(pos *taqi.Position, chain *taqi.Chain, cfg SearchConfig) SearchResult {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	start := time.Now()

	deadline := time.Time{}
	if cfg.TimeLimit > 0 {
		deadline = start.Add(cfg.TimeLimit)
	}

	// 每次调用独享的根引擎：TT、计数器互不串，共享 Engine 并发安全
	run := newLocalEngine()
	sc := &searchCtx{deadline: deadline, maxNodes: cfg.MaxNodes, nodes: &run.nodes}

	res := SearchResult{}
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		if sc.expired() {
			break
		}
		score, move, ok := run.searchRoot(pos, chain, depth, sc)
		if !ok {
			break // 无子可动
		}
		if sc.expired() && res.HasMove {
			break // 这一深度没跑完整，留着上一层的结果
		}
		res.BestMove = move
		res.Score = score
		res.Depth = depth
		res.HasMove = true
	}

	res.Nodes = atomic.LoadInt64(&run.nodes)
	res.TimeUsed = time.Since(start)
	if res.HasMove {
		res.PV = []taqi.Move{res.BestMove}
	}
	return res
}

// searchRoot 根节点：每个候选走法并行搜索，各分支用独享的局部引擎
func (e *Engine) searchRoot(pos *taqi.Position, chain *taqi.Chain, depth int, sc *searchCtx) (int, taqi.Move, bool) {
	moves := pos.GenerateLegalMoves(chain)
	if len(moves) == 0 {
		return 0, taqi.Move{}, false
	}
	orderMoves(pos, moves)

	// 根节点用本次搜索的 TT 排序：上一个深度的最佳着先搜
	key := hashNode(pos, chain)
	if entry, ok := e.tt[key]; ok {
		for i := range moves {
			if moves[i] == entry.Move {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	if len(moves) == 1 {
		score := newLocalEngine().childScore(pos, chain, moves[0], depth, -scoreInf, scoreInf, sc)
		e.storeTT(key, depth, score, moves[0])
		return score, moves[0], true
	}

	scores := make([]int, len(moves))
	var g errgroup.Group
	for i := range moves {
		i := i
		g.Go(func() error {
			// 每个分支自己的局部引擎/TT，免锁；节点数汇总到共享计数器
			scores[i] = newLocalEngine().childScore(pos, chain, moves[i], depth, -scoreInf, scoreInf, sc)
			return nil
		})
	}
	_ = g.Wait() // 分支不返回错误：坏招在 childScore 里已经跳过

	best := 0
	for i := 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	e.storeTT(key, depth, scores[best], moves[best])
	return scores[best], moves[best], true
}

// childScore 应用一个候选并打分。吃子后同方连跳：不换号也不减深度
//（链长受已跳掩码约束，必然有限）；链断了先收尾再换边递归。
// 应用失败的坏招打最低分、跳过，不让整个搜索崩掉。
func (e *Engine) childScore(pos *taqi.Position, chain *taqi.Chain, mv taqi.Move, depth, alpha, beta int, sc *searchCtx) int {
	np, nc, err := pos.ApplyMove(mv, chain)
	if err != nil {
		return -scoreInf
	}
	if nc != nil {
		if len(np.GenerateCaptureMoves(nc)) > 0 {
			return e.negamax(np, nc, depth, 1, alpha, beta, sc)
		}
		np = np.FinalizeChain(nc)
	}
	return -e.negamax(np, nil, depth-1, 1, -beta, -alpha, sc)
}

// negamax 标准 alpha-beta。每次进入都查一次钟：超时就立刻吐静态分，
// 最坏超出截止线的量被单次递归的开销限住。
func (e *Engine) negamax(pos *taqi.Position, chain *taqi.Chain, depth, ply int, alpha, beta int, sc *searchCtx) int {
	atomic.AddInt64(sc.nodes, 1)

	if sc.expired() {
		return Evaluate(pos, pos.SideToMove)
	}

	key := hashNode(pos, chain)
	if entry, ok := e.tt[key]; ok && entry.Depth >= depth {
		return entry.Score
	}

	moves := pos.GenerateLegalMoves(chain)
	if len(moves) == 0 {
		// 无子可动 / 无招可走 = 走子方输；ply 修正让快赢分更高
		return -(mateScore - ply)
	}

	if depth <= 0 {
		return e.quiescence(pos, chain, quiesceMaxDepth, ply, alpha, beta, sc)
	}

	orderMoves(pos, moves)

	best := -scoreInf
	bestMove := taqi.Move{}
	for _, mv := range moves {
		np, nc, err := pos.ApplyMove(mv, chain)
		if err != nil {
			continue // 坏招跳过，搜索继续
		}
		var score int
		if nc != nil && len(np.GenerateCaptureMoves(nc)) > 0 {
			score = e.negamax(np, nc, depth, ply+1, alpha, beta, sc)
		} else {
			child := np
			if nc != nil {
				child = np.FinalizeChain(nc)
			}
			score = -e.negamax(child, nil, depth-1, ply+1, -beta, -alpha, sc)
		}
		if score > best {
			best = score
			bestMove = mv
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	e.storeTT(key, depth, best, bestMove)
	return best
}

// orderMoves 吃子在前；吃子之间按目标价值降序，立即升变的再提前
func orderMoves(pos *taqi.Position, moves []taqi.Move) {
	for i := range moves {
		moves[i].Score = moveOrderScore(pos, moves[i])
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Score > moves[j].Score
	})
}

func moveOrderScore(pos *taqi.Position, mv taqi.Move) int {
	s := 0
	if mv.Capture {
		s += 10_000
		if mv.Over >= 0 {
			s += pieceValue[pos.Board.Squares[mv.Over].Top().Type()]
		}
	}
	top := pos.Board.Squares[mv.From].Top()
	if top.Type() == taqi.PieceMan || top.Type() == taqi.PiecePawn {
		row := mv.To / pos.Board.Size
		if row == 0 || row == pos.Board.Size-1 {
			s += 5_000 // 立即升变
		}
	}
	return s
}
