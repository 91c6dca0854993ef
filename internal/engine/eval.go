package engine

import (
	"taqi/internal/taqi"
)

// ======= 基础子力估值 =======

var pieceValue = map[taqi.PieceType]int{
	taqi.PieceMan:     100,
	taqi.PieceOfficer: 320, // 官/飞子：残局统治力强
	taqi.PiecePawn:    100,
	taqi.PieceKnight:  320,
	taqi.PieceBishop:  330,
	taqi.PieceRook:    500,
	taqi.PieceQueen:   900,
	taqi.PieceKing:    9999999,
}

const (
	mateScore = 1_000_000 // 输赢分的量级；ply 修正让更快的赢分更高

	stackHeightBonus = 6 // 每控制一柱、按柱高给的加成
	stackCountBonus  = 8 // 控制柱数差的权重
	mobilityWeight   = 2 // 行动力差的权重
)

// 升变距离分档：离底线越近分越高（严格递增的档位）
var promotionBands = [8]int{60, 40, 25, 15, 8, 4, 2, 0}

// MaterialSum side 的子力总和（柱内按层折半），死局裁定也用它
func MaterialSum(pos *taqi.Position, side taqi.Side) int {
	sum := 0
	for sq := 0; sq < pos.Board.NumSquares(); sq++ {
		st := pos.Board.Squares[sq]
		for i := len(st) - 1; i >= 0; i-- {
			pc := st[i]
			if pc.Side() != side {
				continue
			}
			depth := len(st) - 1 - i // 0 = 顶子
			v := pieceValue[pc.Type()] >> uint(depth)
			sum += v
		}
	}
	return sum
}

// Evaluate 从 side 视角的静态分。纯函数：同一输入永远同一输出。
// 组成：按柱深折扣的子力、控制柱的柱高加成、普通子的升变距离档位分、
// 行动力差、控制柱数差。国象变体王没了直接给最坏分（搜索推演中会
// 出现这种残缺局面，按最坏信号处理而不是报错）。
func Evaluate(pos *taqi.Position, side taqi.Side) int {
	if pos.Ruleset == taqi.RulesetChess || pos.Ruleset == taqi.RulesetTowerChess {
		if ks := kingScore(pos, side); ks != 0 {
			return ks
		}
	}

	score := 0

	for sq := 0; sq < pos.Board.NumSquares(); sq++ {
		st := pos.Board.Squares[sq]
		if len(st) == 0 {
			continue
		}
		// 子力：顶子全额，往下每层折半
		for i := len(st) - 1; i >= 0; i-- {
			pc := st[i]
			depth := len(st) - 1 - i
			v := pieceValue[pc.Type()] >> uint(depth)
			if pc.Side() == side {
				score += v
			} else {
				score -= v
			}
		}

		controller := st.Side()
		sign := -1
		if controller == side {
			sign = +1
		}

		// 控制柱加成：柱越高越值钱（压着对方俘虏）
		score += sign * stackHeightBonus * len(st)

		// 普通子的升变距离档位
		top := st.Top()
		if top.Type() == taqi.PieceMan {
			dist := distToPromotion(pos, sq, controller)
			if dist >= 0 && dist < len(promotionBands) {
				score += sign * promotionBands[dist]
			}
		}
	}

	// 行动力差 + 控制柱数差
	score += mobilityWeight * mobilityDiff(pos, side)
	score += stackCountBonus * (pos.CountControlled(side) - pos.CountControlled(taqiOpp(side)))

	return score
}

func taqiOpp(side taqi.Side) taqi.Side {
	if side == taqi.White {
		return taqi.Black
	}
	return taqi.White
}

func distToPromotion(pos *taqi.Position, sq int, side taqi.Side) int {
	row := sq / pos.Board.Size
	if side == taqi.White {
		return row
	}
	return pos.Board.Size - 1 - row
}

// mobilityDiff side 的合法步数减对方的。换边只是为了数招，不动原局面。
func mobilityDiff(pos *taqi.Position, side taqi.Side) int {
	mine := pos
	if pos.SideToMove != side {
		flipped := *pos
		flipped.SideToMove = side
		flipped.Hash = 0
		mine = &flipped
	}
	theirs := *pos
	theirs.SideToMove = taqiOpp(side)
	theirs.Hash = 0

	return len(mine.GenerateLegalMoves(nil)) - len(theirs.GenerateLegalMoves(nil))
}

// kingScore 王缺失时的最坏分；双王健在返回 0
func kingScore(pos *taqi.Position, side taqi.Side) int {
	myKing, oppKing := false, false
	for sq := 0; sq < pos.Board.NumSquares(); sq++ {
		// 只看顶子：被压进柱子里的王等于已经阵亡
		top := pos.Board.Squares[sq].Top()
		if top.Type() == taqi.PieceKing {
			if top.Side() == side {
				myKing = true
			} else {
				oppKing = true
			}
		}
	}
	if !myKing {
		return -mateScore
	}
	if !oppKing {
		return mateScore
	}
	return 0
}
