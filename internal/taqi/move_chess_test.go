package taqi

import "testing"

func TestChessInitialMoves(t *testing.T) {
	pos := NewInitialPosition(RulesetChess)
	moves := pos.GenerateLegalMoves(nil)
	if len(moves) != 20 {
		t.Fatalf("initial chess moves: got %d want 20", len(moves))
	}
}

func TestChessKingMustEscapeCheck(t *testing.T) {
	// 黑车 e2 将军：王只能 d1 / f1 / 吃 e2
	pos, err := DecodePosition("chess 4k3/8/8/8/8/8/4r3/4K3 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !pos.IsInCheck(White) {
		t.Fatalf("white must be in check")
	}
	moves := pos.GenerateLegalMoves(nil)
	if len(moves) != 3 {
		t.Fatalf("expected 3 legal replies to the check, got %+v", moves)
	}
	for _, mv := range moves {
		if mv.From != 60 {
			t.Fatalf("only the king may move: %+v", mv)
		}
	}
}

func TestCastlingKingside(t *testing.T) {
	pos, err := DecodePosition("chess 8/8/8/8/8/8/8/4K2R w K")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	moves := pos.GenerateLegalMoves(nil)
	var castle *Move
	for i, mv := range moves {
		if mv.From == 60 && mv.To == 62 {
			castle = &moves[i]
		}
	}
	if castle == nil {
		t.Fatalf("kingside castling missing: %+v", moves)
	}

	np, _, err := pos.ApplyMove(*castle, nil)
	if err != nil {
		t.Fatalf("castle failed: %v", err)
	}
	if np.Board.Squares[62].Top().Type() != PieceKing {
		t.Fatalf("king not on g1")
	}
	if np.Board.Squares[61].Top().Type() != PieceRook {
		t.Fatalf("rook not relocated to f1")
	}
	if np.Castling[White][0] || np.Castling[White][1] {
		t.Fatalf("castle rights must be revoked after castling")
	}
}

func TestCastlingThroughCheckIllegal(t *testing.T) {
	// 黑车 f8 控制 f1：王不能经过被攻击的格子
	pos, err := DecodePosition("chess 5r2/8/8/8/8/8/8/4K2R w K")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for _, mv := range pos.GenerateLegalMoves(nil) {
		if mv.From == 60 && mv.To == 62 {
			t.Fatalf("castling through an attacked square must be illegal")
		}
	}
}

func TestRookMoveRevokesCastleRight(t *testing.T) {
	pos, err := DecodePosition("chess 8/8/8/8/8/8/8/4K2R w K")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	np, _, err := pos.ApplyMove(Move{From: 63, To: 55, Over: -1}, nil)
	if err != nil {
		t.Fatalf("rook move failed: %v", err)
	}
	if np.Castling[White][0] {
		t.Fatalf("rook leaving home must revoke the right")
	}
}

func TestEnPassant(t *testing.T) {
	pos, err := DecodePosition("chess 8/8/8/8/3p4/8/4P3/8 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	// 白兵双步推进，开过路兵窗口
	np, _, err := pos.Step(Move{From: 52, To: 36, Over: -1}, nil)
	if err != nil {
		t.Fatalf("double push failed: %v", err)
	}
	if np.EPSquare != 44 || np.EPPawn != 36 {
		t.Fatalf("ep window wrong: %d,%d", np.EPSquare, np.EPPawn)
	}

	var ep *Move
	moves := np.GenerateLegalMoves(nil)
	for i, mv := range moves {
		if mv.Capture && mv.To == 44 && mv.Over == 36 {
			ep = &moves[i]
		}
	}
	if ep == nil {
		t.Fatalf("en passant capture missing: %+v", moves)
	}

	fp, _, err := np.Step(*ep, nil)
	if err != nil {
		t.Fatalf("en passant failed: %v", err)
	}
	if len(fp.Board.Squares[36]) != 0 {
		t.Fatalf("captured pawn must leave the board")
	}
	if fp.Board.Squares[44].Top() != makePiece(Black, PiecePawn) {
		t.Fatalf("capturing pawn must land on the ep square")
	}
	if fp.EPSquare != -1 {
		t.Fatalf("ep window must close after one move")
	}
}

func TestTowerChessCaptureStacksAndReturnsRemainder(t *testing.T) {
	// 白车吃 a8 上的柱子：顶子（黑车）钻到白车底下，剩余（黑兵）回到 a1
	pos, err := DecodePosition("towerchess [pr]7/8/8/8/8/8/8/R7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	preHash := pos.Hash

	np, _, err := pos.ApplyMove(Move{From: 56, To: 0, Over: 0, Capture: true}, nil)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	landed := np.Board.Squares[0]
	if len(landed) != 2 || landed[0] != makePiece(Black, PieceRook) || landed[1] != makePiece(White, PieceRook) {
		t.Fatalf("captive must sit under the capturer: %v", landed)
	}
	rest := np.Board.Squares[56]
	if len(rest) != 1 || rest[0] != makePiece(Black, PiecePawn) {
		t.Fatalf("remainder of the captured stack must return to the vacated square: %v", rest)
	}
	if np.KoHash != preHash {
		t.Fatalf("capture must record the pre-capture hash")
	}
	if np.SideToMove != Black {
		t.Fatalf("chess rulesets always pass the turn")
	}
}

func TestTowerChessKoForbidsRecreation(t *testing.T) {
	// 黑车有两个吃：把其中一个的结果局面钉成劫，它就必须被滤掉
	pos, err := DecodePosition("towerchess r3P3/8/8/8/P7/8/8/8 b")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	banned := Move{From: 0, To: 32, Over: 32, Capture: true}
	np, _, err := pos.ApplyMove(banned, nil)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	pos.KoHash = np.Hash

	sawOther := false
	for _, mv := range pos.GenerateLegalMoves(nil) {
		if mv == banned {
			t.Fatalf("ko position must be rejected")
		}
		if mv.Capture {
			sawOther = true
		}
	}
	if !sawOther {
		t.Fatalf("the other capture must stay legal")
	}
}
