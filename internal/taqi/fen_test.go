package taqi

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	names := []string{"lasca", "checkers", "checkers+d", "bashni", "chess", "towerchess"}
	for _, name := range names {
		rs, removal, err := ParseRuleset(name)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", name, err)
		}
		pos := NewInitialPosition(rs)
		pos.Removal = removal

		fen := pos.Encode()
		if !strings.HasPrefix(fen, name+" ") {
			t.Fatalf("%s: encoded prefix wrong: %q", name, fen)
		}
		decoded, err := DecodePosition(fen)
		if err != nil {
			t.Fatalf("%s: decode failed: %v", name, err)
		}
		if decoded.Encode() != fen {
			t.Fatalf("%s: round trip drift:\n  in:  %s\n  out: %s", name, fen, decoded.Encode())
		}
		if decoded.Ruleset != rs || decoded.Removal != removal {
			t.Fatalf("%s: ruleset/removal lost in round trip", name)
		}
	}
}

func TestEncodeStacksBottomToTop(t *testing.T) {
	pos := NewInitialPosition(RulesetLasca)
	sq := 24
	st := Stack{makePiece(Black, PieceMan), makePiece(White, PieceOfficer)}
	pos.setStack(sq, st)

	fen := pos.Encode()
	if !strings.Contains(fen, "[mO]") {
		t.Fatalf("stack not encoded bottom-to-top: %q", fen)
	}

	decoded, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got := decoded.Board.Squares[sq]
	if len(got) != 2 || got[0] != makePiece(Black, PieceMan) || got[1] != makePiece(White, PieceOfficer) {
		t.Fatalf("stack lost in round trip: %v", got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"lasca",
		"nosuch 7/7/7/7/7/7/7 w",
		"lasca 7/7/7/7/7/7 w",       // 少一行
		"lasca 7/7/7/8/7/7/7 w",     // 行太宽
		"lasca 7/7/7/3x3/7/7/7 w",   // 未知棋子
		"lasca 7/7/7/3[m3/7/7/7 w",  // 括号不闭合
		"lasca 7/7/7/7/7/7/7 x",     // 走子方非法
		"chess 4k3/8/8/8/8/8/8/4K3 w - 999,70 - 0:0", // 过路格在棋盘外
		"chess 4k3/8/8/8/8/8/8/4K3 w - -5,36 - 0:0",  // 过路格负数
		"lasca 7/7/7/7/7/7/7 w - 49,48 - 0:0",        // 7x7 只有 49 格
	}
	for _, fen := range bad {
		if _, err := DecodePosition(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("expected ErrInvalidFEN for %q, got %v", fen, err)
		}
	}
}

func TestDecodeRestoresSubState(t *testing.T) {
	fen := "towerchess 4k3/8/8/8/8/8/8/4K2R w K 44,36 ab12 7:3"
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !pos.Castling[White][0] || pos.Castling[White][1] || pos.Castling[Black][0] {
		t.Fatalf("castle rights wrong: %+v", pos.Castling)
	}
	if pos.EPSquare != 44 || pos.EPPawn != 36 {
		t.Fatalf("ep state wrong: %d,%d", pos.EPSquare, pos.EPPawn)
	}
	if pos.KoHash != 0xab12 {
		t.Fatalf("ko hash wrong: %x", pos.KoHash)
	}
	if pos.QuietPlies != 7 || pos.NoManPlies != 3 {
		t.Fatalf("counters wrong: %d:%d", pos.QuietPlies, pos.NoManPlies)
	}
	if pos.Encode() != fen {
		t.Fatalf("round trip drift: %q", pos.Encode())
	}
}
