package mcts

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"taqi/internal/engine"
	"taqi/internal/taqi"
)

type Result struct {
	BestMove taqi.Move
	HasMove  bool
	Score    int
	WinProb  float64
	Nodes    int64
	TimeUsed time.Duration
}

// Searcher 用静态评估当叶子价值跑 PUCT，没有策略网络，
// 先验由简单启发（吃子、升变）给出。
type Searcher struct {
	params SearchParams
}

func NewSearcher(params SearchParams) *Searcher {
	return &Searcher{params: params}
}

func (s *Searcher) Search(pos *taqi.Position, chain *taqi.Chain) Result {
	start := time.Now()
	root := NewNode(taqi.Move{}, nil)

	var wg sync.WaitGroup
	simsPerThread := s.params.Simulations / s.params.NumThreads
	if simsPerThread < 1 {
		simsPerThread = 1
	}

	for t := 0; t < s.params.NumThreads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < simsPerThread; i++ {
				if s.params.MaxTime > 0 && time.Since(start) > s.params.MaxTime {
					break
				}
				s.playout(root, pos, chain)
			}
		}()
	}
	wg.Wait()

	// 取访问量最大的根走法
	best := taqi.Move{}
	hasMove := false
	maxVisits := int64(-1)
	root.mu.Lock()
	for i, child := range root.Children {
		v := atomic.LoadInt64(&child.Stats.Visits)
		if v > maxVisits {
			maxVisits = v
			best = root.Moves[i]
			hasMove = true
		}
	}
	root.mu.Unlock()

	u := root.GetUtilityForSelection(pos.SideToMove)
	return Result{
		BestMove: best,
		HasMove:  hasMove,
		Score:    int(u * 10000),
		WinProb:  (u + 1.0) / 2.0,
		Nodes:    atomic.LoadInt64(&root.Stats.Visits),
		TimeUsed: time.Since(start),
	}
}

func (s *Searcher) playout(root *MCTSNode, pos *taqi.Position, chain *taqi.Chain) {
	node := root
	currPos := pos
	currChain := chain
	path := []*MCTSNode{node}

	// Selection
	for {
		if atomic.LoadInt32(&node.State) != StateExpanded || node.IsTerminal {
			break
		}

		mv, next := s.selectChildPUCT(node, currPos.SideToMove)
		if next == nil {
			break
		}

		atomic.AddInt32(&next.VirtualLosses, 1)
		node = next
		path = append(path, node)

		np, nc, err := currPos.Step(mv, currChain)
		if err != nil {
			break
		}
		currPos, currChain = np, nc
	}

	// Expansion & Evaluation，utility 统一白方视角
	var utility float64
	if node.IsTerminal {
		utility = node.TerminalUtility
	} else {
		utility = s.expandNode(node, currPos, currChain)
	}

	// Backpropagation
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		n.RecordPlayout(utility, 1.0)
		if i > 0 {
			atomic.AddInt32(&n.VirtualLosses, -1)
		}
	}
}

func (s *Searcher) selectChildPUCT(node *MCTSNode, pla taqi.Side) (taqi.Move, *MCTSNode) {
	node.mu.Lock()
	defer node.mu.Unlock()

	var bestMove taqi.Move
	var bestChild *MCTSNode
	maxSelectionValue := -1e20

	totalWeight := node.Stats.WeightSum
	cpuct := s.params.GetCpuct(totalWeight)
	fpuValue := node.GetUtilityForSelection(pla) - s.params.FpuReductionMax

	for i, child := range node.Children {
		childWeight := float64(atomic.LoadInt64(&child.Stats.Visits))
		vLoss := float64(atomic.LoadInt32(&child.VirtualLosses))
		childWeight += vLoss

		var childUtility float64
		if childWeight > 0 {
			childUtility = child.GetUtilityForSelection(pla)
			if vLoss > 0 {
				// 正在被别的线程探索的分支临时压低
				vLossFactor := vLoss / (vLoss + childWeight)
				childUtility = childUtility*(1-vLossFactor) + (-1.0)*vLossFactor
			}
		} else {
			childUtility = fpuValue
		}

		exploreValue := cpuct * node.Priors[i] * math.Sqrt(totalWeight+1.0) / (1.0 + childWeight)

		if sv := childUtility + exploreValue; sv > maxSelectionValue {
			maxSelectionValue = sv
			bestMove = node.Moves[i]
			bestChild = child
		}
	}

	return bestMove, bestChild
}

// expandNode 展开并返回叶子价值（白方视角）
func (s *Searcher) expandNode(node *MCTSNode, pos *taqi.Position, chain *taqi.Chain) float64 {
	if !atomic.CompareAndSwapInt32(&node.State, StateUnevaluated, StateEvaluating) {
		// 别的线程正在展开，本次只做静态评估回传
		return s.leafValue(pos)
	}

	if adj := engine.Adjudicate(pos); adj.Over {
		return s.markTerminal(node, adjUtility(adj))
	}

	moves := pos.GenerateLegalMoves(chain)
	if len(moves) == 0 {
		// 无子可动一方输
		u := 1.0
		if pos.SideToMove == taqi.White {
			u = -1.0
		}
		return s.markTerminal(node, u)
	}

	priors := make([]float64, len(moves))
	total := 0.0
	for i, mv := range moves {
		p := 1.0
		if mv.Capture {
			p = 4.0
		}
		if rowOfLanding(pos, mv) {
			p += 2.0
		}
		priors[i] = p
		total += p
	}
	for i := range priors {
		priors[i] /= total
	}

	children := make([]*MCTSNode, len(moves))
	for i, mv := range moves {
		children[i] = NewNode(mv, node)
	}

	node.mu.Lock()
	node.Moves = moves
	node.Children = children
	node.Priors = priors
	atomic.StoreInt32(&node.State, StateExpanded)
	node.mu.Unlock()

	return s.leafValue(pos)
}

func (s *Searcher) markTerminal(node *MCTSNode, u float64) float64 {
	node.mu.Lock()
	node.IsTerminal = true
	node.TerminalUtility = u
	atomic.StoreInt32(&node.State, StateExpanded)
	node.mu.Unlock()
	return u
}

func (s *Searcher) leafValue(pos *taqi.Position) float64 {
	return math.Tanh(float64(engine.Evaluate(pos, taqi.White)) / s.params.EvalScale)
}

func adjUtility(adj engine.Adjudication) float64 {
	switch adj.Winner {
	case taqi.White:
		return 1.0
	case taqi.Black:
		return -1.0
	default:
		return 0.0
	}
}

// 落点是否升变行（先验里给升变一点倾斜）
func rowOfLanding(pos *taqi.Position, mv taqi.Move) bool {
	st := pos.Board.Squares[mv.From]
	if len(st) == 0 {
		return false
	}
	top := st.Top()
	if top.Type() != taqi.PieceMan {
		return false
	}
	promo := 0
	if st.Side() == taqi.Black {
		promo = pos.Board.Size - 1
	}
	return mv.To/pos.Board.Size == promo
}
