package engine

import (
	"testing"

	"taqi/internal/taqi"
)

func TestEvaluateSymmetricAndDeterministic(t *testing.T) {
	for _, rs := range []taqi.Ruleset{taqi.RulesetLasca, taqi.RulesetCheckers, taqi.RulesetBashni} {
		pos := taqi.NewInitialPosition(rs)
		w := Evaluate(pos, taqi.White)
		b := Evaluate(pos, taqi.Black)
		if w != b {
			t.Fatalf("ruleset %d: mirrored initial position must score equally: w=%d b=%d", rs, w, b)
		}
		if Evaluate(pos, taqi.White) != w {
			t.Fatalf("ruleset %d: Evaluate not deterministic", rs)
		}
	}
}

func TestEvaluatePrefersMaterial(t *testing.T) {
	// 白 2 兵对黑 1 兵
	pos, err := taqi.DecodePosition("lasca 7/7/7/3m3/7/1M1M3/7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if Evaluate(pos, taqi.White) <= 0 {
		t.Fatalf("the side up a piece must score positive")
	}
	if Evaluate(pos, taqi.Black) >= 0 {
		t.Fatalf("the side down a piece must score negative")
	}
}

func TestMaterialSumHalvesBuriedPieces(t *testing.T) {
	pos, err := taqi.DecodePosition("lasca 7/7/7/3[mM]3/7/7/7 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := MaterialSum(pos, taqi.White); got != 100 {
		t.Fatalf("top piece counts in full: got %d", got)
	}
	if got := MaterialSum(pos, taqi.Black); got != 50 {
		t.Fatalf("buried piece counts halved: got %d", got)
	}
}

func TestKingBuriedInTowerCountsAsDead(t *testing.T) {
	// 白王被压进柱子：对白就是必败分
	pos, err := taqi.DecodePosition("towerchess 4k3/8/8/3[Kr]4/8/8/8/8 w")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if Evaluate(pos, taqi.White) != -mateScore {
		t.Fatalf("buried king must be scored as lost")
	}
	if Evaluate(pos, taqi.Black) != mateScore {
		t.Fatalf("opponent must see the mirror score")
	}
}
