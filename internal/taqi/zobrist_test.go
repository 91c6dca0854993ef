package taqi

import "testing"

var allRulesets = []Ruleset{
	RulesetLasca, RulesetCheckers, RulesetBashni, RulesetChess, RulesetTowerChess,
}

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	for _, rs := range allRulesets {
		pos := NewInitialPosition(rs)
		if pos.Hash != pos.CalculateHash() {
			t.Fatalf("ruleset %d: initial hash mismatch: got=%d want=%d", rs, pos.Hash, pos.CalculateHash())
		}

		decoded, err := DecodePosition(pos.Encode())
		if err != nil {
			t.Fatalf("ruleset %d: decode failed: %v", rs, err)
		}
		if decoded.Hash != decoded.CalculateHash() {
			t.Fatalf("ruleset %d: decoded hash mismatch", rs)
		}
		if decoded.Hash != pos.Hash {
			t.Fatalf("ruleset %d: decoded hash differs from source: got=%d want=%d", rs, decoded.Hash, pos.Hash)
		}
	}
}

func TestStepHashIncrementalMatchesFullRecompute(t *testing.T) {
	for _, rs := range allRulesets {
		pos := NewInitialPosition(rs)
		var chain *Chain
		for ply := 0; ply < 24; ply++ {
			moves := pos.GenerateLegalMoves(chain)
			if len(moves) == 0 {
				break
			}
			mv := moves[len(moves)/2]
			next, nc, err := pos.Step(mv, chain)
			if err != nil {
				t.Fatalf("ruleset %d: step failed at ply %d: %+v: %v", rs, ply, mv, err)
			}
			if next.Hash != next.CalculateHash() {
				t.Fatalf("ruleset %d: hash mismatch at ply %d: got=%d want=%d move=%+v",
					rs, ply, next.Hash, next.CalculateHash(), mv)
			}
			pos, chain = next, nc
		}
	}
}

func TestStacksWithDifferentDepthHashDifferently(t *testing.T) {
	pos := NewInitialPosition(RulesetLasca)
	sq := 24 // 中央空格

	a := *pos
	a.setStack(sq, Stack{makePiece(White, PieceMan)})
	b := *pos
	b.setStack(sq, Stack{makePiece(Black, PieceMan), makePiece(White, PieceMan)})

	if a.Hash == b.Hash {
		t.Fatalf("single piece and stack with same top hash equally")
	}
	if a.Hash != a.CalculateHash() || b.Hash != b.CalculateHash() {
		t.Fatalf("incremental hash diverged from full recompute")
	}
}
