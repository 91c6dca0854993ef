package taqi

import (
	"errors"
	"testing"
)

func TestCheckersInitialQuietMoves(t *testing.T) {
	pos := NewInitialPosition(RulesetCheckers)
	moves := pos.GenerateLegalMoves(nil)
	if len(moves) != 7 {
		t.Fatalf("initial quiet moves: got %d want 7: %+v", len(moves), moves)
	}
}

// 白兵 (5,2) 有两连跳，白兵 (2,7) 只有单跳：最长吃规则只留两连跳
const maxCaptureFEN = "checkers 8/6m1/3m3M/8/3m4/2M5/8/8 w"

func TestCheckersMaxCaptureFilter(t *testing.T) {
	pos, err := DecodePosition(maxCaptureFEN)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	moves := pos.GenerateLegalMoves(nil)
	if len(moves) != 1 {
		t.Fatalf("only the longest capture may survive, got %+v", moves)
	}
	if moves[0].From != 42 || moves[0].Over != 35 || moves[0].To != 28 {
		t.Fatalf("wrong capture kept: %+v", moves[0])
	}
}

func TestCheckersImmediateVsDeferredRemoval(t *testing.T) {
	first := Move{From: 42, To: 28, Over: 35, Capture: true}

	// 立即移除：第一跳之后被跳子已离场
	pos, err := DecodePosition(maxCaptureFEN)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	np, nc, err := pos.ApplyMove(first, nil)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(np.Board.Squares[35]) != 0 {
		t.Fatalf("immediate mode must clear the jumped square at once")
	}
	if nc == nil {
		t.Fatalf("chain should continue")
	}

	// 延迟移除：链没收尾前被跳子还在原格
	dpos, err := DecodePosition("checkers+d 8/6m1/3m3M/8/3m4/2M5/8/8 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	dnp, dnc, err := dpos.ApplyMove(first, nil)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(dnp.Board.Squares[35]) == 0 {
		t.Fatalf("deferred mode must keep the jumped piece until the chain ends")
	}

	second := Move{From: 28, To: 10, Over: 19, Capture: true}
	dnp2, dnc2, err := dnp.Step(second, dnc)
	if err != nil {
		t.Fatalf("second jump failed: %v", err)
	}
	if dnc2 != nil {
		t.Fatalf("chain should finalize after the second jump")
	}
	if len(dnp2.Board.Squares[35]) != 0 || len(dnp2.Board.Squares[19]) != 0 {
		t.Fatalf("deferred removals must happen when the chain ends")
	}
	if dnp2.SideToMove != Black {
		t.Fatalf("side must toggle at chain end")
	}
}

func TestOfficerFlyingCaptureLandings(t *testing.T) {
	// 白官 (7,0)，黑兵 (4,3)：跳过后可以落在斜线上任意空格
	pos, err := DecodePosition("checkers 8/8/8/8/3m4/8/8/O7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	moves := pos.GenerateCaptureMoves(nil)
	if len(moves) != 4 {
		t.Fatalf("flying officer should have 4 landing squares, got %+v", moves)
	}
	wantTo := map[int]bool{28: false, 21: false, 14: false, 7: false}
	for _, mv := range moves {
		if mv.Over != 35 {
			t.Fatalf("wrong jumped square: %+v", mv)
		}
		if _, ok := wantTo[mv.To]; !ok {
			t.Fatalf("unexpected landing square: %+v", mv)
		}
		wantTo[mv.To] = true
	}
	for to, seen := range wantTo {
		if !seen {
			t.Fatalf("landing square %d missing", to)
		}
	}
}

func TestOfficerZigzagConstraint(t *testing.T) {
	// 白官沿右上吃 (6,1) 落 (5,2)；继续沿同一条斜线吃 (4,3) 被之字形约束禁止
	pos, err := DecodePosition("checkers 8/8/8/8/3m4/8/1m6/O7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	moves := pos.GenerateLegalMoves(nil)
	if len(moves) != 1 {
		t.Fatalf("expected a single capture, got %+v", moves)
	}
	if moves[0].Over != 49 || moves[0].To != 42 {
		t.Fatalf("wrong capture: %+v", moves[0])
	}

	np, nc, err := pos.Step(moves[0], nil)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if nc != nil {
		t.Fatalf("same-diagonal continuation must be rejected, chain=%+v", nc)
	}
	if np.SideToMove != Black {
		t.Fatalf("turn must pass after the chain ends")
	}
	if len(np.Board.Squares[35]) == 0 {
		t.Fatalf("the piece on the forbidden continuation must survive")
	}
}

func TestApplyMoveStructuralErrors(t *testing.T) {
	pos := NewInitialPosition(RulesetCheckers)

	cases := []struct {
		name  string
		mv    Move
		chain *Chain
	}{
		{"out of range", Move{From: -1, To: 5}, nil},
		{"empty origin", Move{From: 27, To: 20}, nil},
		{"opponent piece", Move{From: 1, To: 10}, nil},
		{"chain locked elsewhere", Move{From: 42, To: 33}, &Chain{From: 17}},
	}
	for _, tc := range cases {
		if _, _, err := pos.ApplyMove(tc.mv, tc.chain); !errors.Is(err, ErrStructural) {
			t.Fatalf("%s: expected ErrStructural, got %v", tc.name, err)
		}
	}
}

func TestApplyMoveUnknownRuleset(t *testing.T) {
	pos := NewInitialPosition(RulesetCheckers)
	pos.Ruleset = Ruleset(99)
	_, _, err := pos.ApplyMove(Move{From: 42, To: 33}, nil)
	if !errors.Is(err, ErrRuleset) {
		t.Fatalf("expected ErrRuleset, got %v", err)
	}
}
