package engine

import (
	"sync"
	"testing"
	"time"

	"taqi/internal/taqi"
)

func TestSearchReturnsForcedCapture(t *testing.T) {
	// 强制吃：唯一合法步，任何深度都必须原样返回
	pos, err := taqi.DecodePosition("lasca 7/7/7/3m3/2M4/7/7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	for _, depth := range []int{1, 3, 6} {
		res := NewEngine().Search(pos, nil, SearchConfig{MaxDepth: depth})
		if !res.HasMove {
			t.Fatalf("depth %d: search found no move", depth)
		}
		if res.BestMove.From != 30 || res.BestMove.To != 18 || !res.BestMove.Capture {
			t.Fatalf("depth %d: wrong move %+v", depth, res.BestMove)
		}
		if res.Depth < 1 {
			t.Fatalf("depth %d: no completed iteration", depth)
		}
	}
}

func TestSearchNoMoves(t *testing.T) {
	// 黑兵被堵死在角上，白方走：黑方视角应当无招
	pos, err := taqi.DecodePosition("lasca 7/7/7/7/7/5M1/6m b")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	res := NewEngine().Search(pos, nil, SearchConfig{MaxDepth: 3})
	if res.HasMove {
		t.Fatalf("blocked side must have no move, got %+v", res.BestMove)
	}
}

func TestSearchResumesMidChain(t *testing.T) {
	// 两连跳的中途恢复搜索：必须继续锁定的那一跳
	pos, err := taqi.DecodePosition("lasca 7/3m3/7/3m3/2M4/7/7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	np, nc, err := pos.ApplyMove(taqi.Move{From: 30, To: 18, Over: 24, Capture: true}, nil)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if nc == nil {
		t.Fatalf("chain should continue")
	}

	res := NewEngine().Search(np, nc, SearchConfig{MaxDepth: 4})
	if !res.HasMove {
		t.Fatalf("mid-chain search found no move")
	}
	if res.BestMove.From != 18 || res.BestMove.To != 2 {
		t.Fatalf("must continue the locked chain: %+v", res.BestMove)
	}
}

func TestSearchRespectsNodeBudget(t *testing.T) {
	pos := taqi.NewInitialPosition(taqi.RulesetCheckers)
	res := NewEngine().Search(pos, nil, SearchConfig{MaxDepth: 12, MaxNodes: 500, TimeLimit: 2 * time.Second})
	// 预算内必须还能给出合法招（浅层结果兜底）
	if !res.HasMove {
		t.Fatalf("budgeted search must still produce a move")
	}
}

func TestSearchSharedEngineConcurrent(t *testing.T) {
	// 服务端所有请求共用一个 Engine：并发 Search 互不串状态
	pos := taqi.NewInitialPosition(taqi.RulesetCheckers)
	e := NewEngine()

	const workers = 4
	results := make([]SearchResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Search(pos, nil, SearchConfig{MaxDepth: 4})
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if !res.HasMove {
			t.Fatalf("worker %d: no move", i)
		}
		if res.BestMove != results[0].BestMove || res.Score != results[0].Score {
			t.Fatalf("worker %d diverged: %+v vs %+v", i, res, results[0])
		}
	}
}

func TestChooseMoveBeginnerConcurrent(t *testing.T) {
	// top-K 随机与共享 rng：并发 ChooseMove 也得安全返回合法步
	pos := taqi.NewInitialPosition(taqi.RulesetLasca)
	e := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mv, ok, _ := e.ChooseMove(pos, nil, LevelBeginner)
			if !ok {
				t.Errorf("no move from beginner level")
				return
			}
			np, _, err := pos.Step(mv, nil)
			if err != nil || np == nil {
				t.Errorf("illegal move %+v: %v", mv, err)
			}
		}()
	}
	wg.Wait()
}

func TestChooseMoveAllLevels(t *testing.T) {
	pos, err := taqi.DecodePosition("lasca 7/7/7/3m3/2M4/7/7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for _, lv := range []Level{LevelBeginner, LevelEasy, LevelMedium, LevelHard} {
		mv, ok, _ := NewEngine().ChooseMove(pos, nil, lv)
		if !ok {
			t.Fatalf("level %d: no move chosen", lv)
		}
		if !mv.Capture || mv.From != 30 {
			t.Fatalf("level %d: forced capture ignored: %+v", lv, mv)
		}
	}
}

func TestChooseMoveNoLegalMoves(t *testing.T) {
	pos, err := taqi.DecodePosition("lasca 7/7/7/7/7/5M1/6m b")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok, _ := NewEngine().ChooseMove(pos, nil, LevelMedium); ok {
		t.Fatalf("no legal moves must report no choice")
	}
}

func TestParseLevel(t *testing.T) {
	if lv, ok := ParseLevel("hard"); !ok || lv != LevelHard {
		t.Fatalf("parse hard failed")
	}
	if _, ok := ParseLevel("impossible"); ok {
		t.Fatalf("unknown level must not parse")
	}
}

func TestAdjudicateLadder(t *testing.T) {
	// 没到阈值：不裁定
	pos, err := taqi.DecodePosition("lasca 7/7/7/3m3/7/1M1M3/7 w - - - 0:0")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if adj := Adjudicate(pos); adj.Over {
		t.Fatalf("fresh position must not be adjudicated")
	}

	// 子数多者胜
	pos.QuietPlies = DeadPlayQuietThreshold
	adj := Adjudicate(pos)
	if !adj.Over || adj.Winner != taqi.White || adj.Reason != "piece_count" {
		t.Fatalf("piece count rung failed: %+v", adj)
	}

	// 子数相同、子力不同：官对兵
	pos2, err := taqi.DecodePosition("lasca 7/7/7/3m3/7/1O5/7 w - - - 60:0")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	adj2 := Adjudicate(pos2)
	if !adj2.Over || adj2.Winner != taqi.White || adj2.Reason != "material" {
		t.Fatalf("material rung failed: %+v", adj2)
	}
}
