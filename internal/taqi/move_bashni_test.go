package taqi

import "testing"

func TestBashniCaptureBuildsTower(t *testing.T) {
	// 跟跳棋同一几何，但被跳子不是离场而是钻到跳子柱底下
	pos, err := DecodePosition("bashni 8/6m1/3m3M/8/3m4/2M5/8/8 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	moves := pos.GenerateLegalMoves(nil)
	if len(moves) != 1 || moves[0].From != 42 {
		t.Fatalf("longest capture must be forced, got %+v", moves)
	}

	np, nc, err := pos.ApplyMove(moves[0], nil)
	if err != nil {
		t.Fatalf("first jump failed: %v", err)
	}
	if len(np.Board.Squares[35]) != 0 {
		t.Fatalf("single jumped piece leaves its square empty")
	}
	st := np.Board.Squares[28]
	if len(st) != 2 || st[0].Side() != Black || st.Top() != makePiece(White, PieceMan) {
		t.Fatalf("captive not under the capturer: %v", st)
	}

	fp, fc, err := np.Step(Move{From: 28, To: 10, Over: 19, Capture: true}, nc)
	if err != nil {
		t.Fatalf("second jump failed: %v", err)
	}
	if fc != nil || fp.SideToMove != Black {
		t.Fatalf("chain must finalize after the second jump")
	}
	tower := fp.Board.Squares[10]
	if len(tower) != 3 || tower.Top() != makePiece(White, PieceMan) {
		t.Fatalf("tower should hold two captives under the mover: %v", tower)
	}
}

func TestBashniJumpedTowerKeepsRemainder(t *testing.T) {
	// 被跳的是柱子：只失去顶子，剩余部分留在原格
	pos, err := DecodePosition("bashni 8/8/8/8/3[Mm]4/2M5/8/8 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	np, _, err := pos.ApplyMove(Move{From: 42, To: 28, Over: 35, Capture: true}, nil)
	if err != nil {
		t.Fatalf("jump failed: %v", err)
	}
	rest := np.Board.Squares[35]
	if len(rest) != 1 || rest[0] != makePiece(White, PieceMan) {
		t.Fatalf("remainder must stay behind: %v", rest)
	}
	if rest.Side() != White {
		t.Fatalf("uncovered piece changes control of the square")
	}
}
