package engine

import (
	"math/rand"
	"sort"
	"time"

	"taqi/internal/taqi"
)

// Level 难度档位
type Level int8

const (
	LevelBeginner Level = iota // 浅搜索 + top-K 随机：装菜但不送子
	LevelEasy
	LevelMedium
	LevelHard
)

type levelParams struct {
	MaxDepth  int
	TimeLimit time.Duration
	TopK      int // >0：在 1-ply 评分的前 K 名里随机挑一个
}

var levelTable = map[Level]levelParams{
	LevelBeginner: {MaxDepth: 2, TimeLimit: 300 * time.Millisecond, TopK: 3},
	LevelEasy:     {MaxDepth: 3, TimeLimit: 800 * time.Millisecond},
	LevelMedium:   {MaxDepth: 5, TimeLimit: 2 * time.Second},
	LevelHard:     {MaxDepth: 8, TimeLimit: 5 * time.Second},
}

func ParseLevel(s string) (Level, bool) {
	switch s {
	case "beginner":
		return LevelBeginner, true
	case "easy":
		return LevelEasy, true
	case "medium":
		return LevelMedium, true
	case "hard":
		return LevelHard, true
	}
	return 0, false
}

// ChooseMove 按难度档位选一步。只要还有合法步就绝不返回“无招”——
// 兜底是任何一个合法步。
func (e *Engine) ChooseMove(pos *taqi.Position, chain *taqi.Chain, level Level) (taqi.Move, bool, SearchResult) {
	params, ok := levelTable[level]
	if !ok {
		params = levelTable[LevelMedium]
	}

	legal := pos.GenerateLegalMoves(chain)
	if len(legal) == 0 {
		return taqi.Move{}, false, SearchResult{}
	}

	if params.TopK > 1 && len(legal) > 1 {
		if mv, ok := e.pickAmongTopK(pos, chain, legal, params.TopK); ok {
			return mv, true, SearchResult{BestMove: mv, HasMove: true, Depth: 1, Nodes: int64(len(legal))}
		}
	}

	res := e.Search(pos, chain, SearchConfig{
		MaxDepth:  params.MaxDepth,
		TimeLimit: params.TimeLimit,
	})
	if res.HasMove {
		return res.BestMove, true, res
	}
	// 搜索没吐出招（极端超时等）：兜底第一个合法步
	return legal[0], true, res
}

// pickAmongTopK 每个候选走一步（自动收链尾）按静态分排序，
// 在前 K 名里均匀随机挑一个：模拟弱手但不乱送
func (e *Engine) pickAmongTopK(pos *taqi.Position, chain *taqi.Chain, legal []taqi.Move, k int) (taqi.Move, bool) {
	type scored struct {
		mv    taqi.Move
		score int
	}
	cands := make([]scored, 0, len(legal))
	for _, mv := range legal {
		np, nc, err := pos.Step(mv, chain)
		if err != nil {
			continue
		}
		// 链未断时从延续方自己的视角评，断了从对方视角取反
		var s int
		if nc != nil {
			s = Evaluate(np, np.SideToMove)
		} else {
			s = -Evaluate(np, np.SideToMove)
		}
		cands = append(cands, scored{mv: mv, score: s})
	}
	if len(cands) == 0 {
		return taqi.Move{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	if k > len(cands) {
		k = len(cands)
	}
	if e.rng == nil {
		return cands[rand.Intn(k)].mv, true
	}
	e.rngMu.Lock()
	pick := e.rng.Intn(k)
	e.rngMu.Unlock()
	return cands[pick].mv, true
}
