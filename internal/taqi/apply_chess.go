package taqi

import "fmt"

// 国象应用层。chess：被吃子离场。towerchess：被吃柱的顶子钻到吃子柱
// 底下，柱子剩下的部分回到吃子方腾出的出发格；吃子后还要记“劫”哈希，
// 禁止对方下一步用吃子复现吃子前的局面。国象没有连跳，永远立即换边。
func (p *Position) applyChessMove(mv Move) (*Position, *Chain, error) {
	p.EnsureHash()
	mover := p.Board.Squares[mv.From]
	top := mover.Top()
	side := top.Side()

	np := *p

	if mv.Capture {
		if mv.Over < 0 || mv.Over >= np.Board.NumSquares() {
			return nil, nil, fmt.Errorf("%w: jumped square %d out of range", ErrStructural, mv.Over)
		}
		target := p.Board.Squares[mv.Over]
		if target.Side() != opposite(side) {
			return nil, nil, fmt.Errorf("%w: square %d holds no capturable piece", ErrStructural, mv.Over)
		}
		if mv.Over != mv.To && len(p.Board.Squares[mv.To]) != 0 {
			return nil, nil, fmt.Errorf("%w: landing square %d occupied", ErrStructural, mv.To)
		}
	} else if len(p.Board.Squares[mv.To]) != 0 {
		return nil, nil, fmt.Errorf("%w: landing square %d occupied", ErrStructural, mv.To)
	}

	moved := append(Stack(nil), mover...)
	np.setStack(mv.From, nil)

	if mv.Capture {
		target := append(Stack(nil), p.Board.Squares[mv.Over]...)
		np.setStack(mv.Over, nil)
		if np.Ruleset == RulesetTowerChess {
			captive := target[len(target)-1]
			rest := target[:len(target)-1]
			if len(rest) > 0 {
				np.setStack(mv.From, rest) // 剩余俘虏回到腾出的格子
			}
			landed := make(Stack, 0, len(moved)+1)
			landed = append(landed, captive)
			landed = append(landed, moved...)
			moved = landed
		}
	}

	// 升变：兵到底线直接变后（国象无连跳，不存在延迟升变）
	if top.Type() == PiecePawn && np.Board.rowOf(mv.To) == promotionRow(side, np.Board.Size) {
		moved[len(moved)-1] = makePiece(side, PieceQueen)
	}

	// 王车易位：王横移两格时同时搬车
	if top.Type() == PieceKing && absInt(np.Board.colOf(mv.To)-np.Board.colOf(mv.From)) == 2 {
		flank := 0
		rookTo := mv.To - 1 // 王翼：车落在王的内侧
		if np.Board.colOf(mv.To) < np.Board.colOf(mv.From) {
			flank = 1
			rookTo = mv.To + 1
		}
		rookSq := rookHomeSquare(side, flank)
		rook := np.Board.Squares[rookSq]
		if rook.Top().Type() != PieceRook || rook.Side() != side {
			return nil, nil, fmt.Errorf("%w: castling without rook on %d", ErrStructural, rookSq)
		}
		np.setStack(rookSq, nil)
		np.setStack(rookTo, append(Stack(nil), rook...))
	}

	np.setStack(mv.To, moved)

	// 易位权：王动 / 车离家 / 家里的车被吃，都撤销对应的权利
	if top.Type() == PieceKing {
		np.revokeCastle(side, 0)
		np.revokeCastle(side, 1)
	}
	for s := White; s <= Black; s++ {
		for flank := 0; flank < 2; flank++ {
			home := rookHomeSquare(s, flank)
			if mv.From == home || mv.To == home || (mv.Capture && mv.Over == home) {
				np.revokeCastle(s, flank)
			}
		}
	}

	// 吃过路兵窗口：只开一回合
	if top.Type() == PiecePawn && absInt(np.Board.rowOf(mv.To)-np.Board.rowOf(mv.From)) == 2 {
		np.setEP((mv.From+mv.To)/2, mv.To)
	} else {
		np.setEP(-1, -1)
	}

	// 劫哈希：吃子步记下吃之前的局面，其余步清掉
	if np.Ruleset == RulesetTowerChess && mv.Capture {
		np.KoHash = p.Hash
	} else {
		np.KoHash = 0
	}

	np.bumpCounters(top.Type() == PiecePawn, mv.Capture)
	np.toggleSide()
	return &np, nil, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
