package taqi

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural 应用层收到与当前局面不一致的 Move：起点空、跳子无效、
	// 落点被占……这是调用方的 bug，必须响亮地失败而不是悄悄吞掉。
	ErrStructural = errors.New("structurally invalid move")
	// ErrRuleset 未知的规则变体或棋盘尺寸
	ErrRuleset = errors.New("unsupported ruleset configuration")
)

// setStack 替换一格的柱子并增量维护哈希。只在新 Position 上调用。
func (p *Position) setStack(sq int, st Stack) {
	p.Hash ^= stackHashKey(p.Board.Squares[sq], sq)
	if len(st) == 0 {
		st = nil
	}
	p.Board.Squares[sq] = st
	p.Hash ^= stackHashKey(st, sq)
}

func (p *Position) toggleSide() {
	p.SideToMove = opposite(p.SideToMove)
	p.Hash ^= zobristSide
}

func (p *Position) setEP(sq, pawn int) {
	if p.EPSquare >= 0 {
		p.Hash ^= zobristEP[p.EPSquare]
	}
	p.EPSquare, p.EPPawn = sq, pawn
	if sq >= 0 {
		p.Hash ^= zobristEP[sq]
	}
}

func (p *Position) revokeCastle(side Side, flank int) {
	if p.Castling[side][flank] {
		p.Castling[side][flank] = false
		p.Hash ^= zobristCastle[side][flank]
	}
}

// dirIndexBetween from→to 的斜方向下标；不是斜线返回 -1
func dirIndexBetween(b *Board, from, to int) int {
	dr := b.rowOf(to) - b.rowOf(from)
	dc := b.colOf(to) - b.colOf(from)
	if dr == 0 || dc == 0 {
		return -1
	}
	sr, sc := 1, 1
	if dr < 0 {
		sr, dr = -1, -dr
	}
	if dc < 0 {
		sc, dc = -1, -dc
	}
	if dr != dc {
		return -1
	}
	for i, d := range diagDirs {
		if d[0] == sr && d[1] == sc {
			return i
		}
	}
	return -1
}

// ApplyMove 应用一步（安静步或连跳中的一跳），返回新 Position。
// 吃子步不换边：返回的 *Chain 描述连跳约束，调用方需要在落点重新生成
// 吃子步来判断链是否延续；没有后续时调用 FinalizeChain 收尾。
// 结构不一致的 Move 返回 ErrStructural——生成器绝不应产出这种招。
func (p *Position) ApplyMove(mv Move, chain *Chain) (*Position, *Chain, error) {
	n := p.Board.NumSquares()
	if mv.From < 0 || mv.From >= n || mv.To < 0 || mv.To >= n {
		return nil, nil, fmt.Errorf("%w: square out of range %d->%d", ErrStructural, mv.From, mv.To)
	}
	mover := p.Board.Squares[mv.From]
	if len(mover) == 0 {
		return nil, nil, fmt.Errorf("%w: empty origin %d", ErrStructural, mv.From)
	}
	if mover.Side() != p.SideToMove {
		return nil, nil, fmt.Errorf("%w: origin %d not owned by side to move", ErrStructural, mv.From)
	}
	if chain != nil {
		if !mv.Capture || mv.From != chain.From {
			return nil, nil, fmt.Errorf("%w: chain locked to square %d", ErrStructural, chain.From)
		}
	}

	switch p.Ruleset {
	case RulesetLasca, RulesetBashni:
		return p.applyStackingMove(mv, chain)
	case RulesetCheckers:
		return p.applyCheckersMove(mv, chain)
	case RulesetChess, RulesetTowerChess:
		if chain != nil {
			return nil, nil, fmt.Errorf("%w: no capture chains in chess rulesets", ErrStructural)
		}
		return p.applyChessMove(mv)
	default:
		return nil, nil, fmt.Errorf("%w: ruleset %d", ErrRuleset, p.Ruleset)
	}
}

func (p *Position) validateCapture(mv Move, chain *Chain) error {
	if mv.Over < 0 || mv.Over >= p.Board.NumSquares() {
		return fmt.Errorf("%w: jumped square %d out of range", ErrStructural, mv.Over)
	}
	over := p.Board.Squares[mv.Over]
	if over.Side() != opposite(p.SideToMove) {
		return fmt.Errorf("%w: square %d holds no capturable piece", ErrStructural, mv.Over)
	}
	if chain != nil && chain.Jumped&(1<<uint(mv.Over)) != 0 {
		return fmt.Errorf("%w: square %d already jumped in this chain", ErrStructural, mv.Over)
	}
	if len(p.Board.Squares[mv.To]) != 0 {
		return fmt.Errorf("%w: landing square %d occupied", ErrStructural, mv.To)
	}
	return nil
}

// 叠棋吃法（lasca / bashni）：被跳柱失去顶子，顶子钻到跳子柱最底下
func (p *Position) applyStackingMove(mv Move, chain *Chain) (*Position, *Chain, error) {
	p.EnsureHash()
	mover := p.Board.Squares[mv.From]
	top := mover.Top()

	np := *p
	if !mv.Capture {
		if len(p.Board.Squares[mv.To]) != 0 {
			return nil, nil, fmt.Errorf("%w: landing square %d occupied", ErrStructural, mv.To)
		}
		moved := append(Stack(nil), mover...)
		if top.Type() == PieceMan && np.Board.rowOf(mv.To) == promotionRow(top.Side(), np.Board.Size) {
			moved[len(moved)-1] = makePiece(top.Side(), PieceOfficer)
		}
		np.setStack(mv.From, nil)
		np.setStack(mv.To, moved)
		np.bumpCounters(top.Type() == PieceMan, false)
		np.toggleSide()
		return &np, nil, nil
	}

	if err := p.validateCapture(mv, chain); err != nil {
		return nil, nil, err
	}
	overStack := p.Board.Squares[mv.Over]
	captive := overStack.Top()
	rest := append(Stack(nil), overStack[:len(overStack)-1]...)

	landed := make(Stack, 0, len(mover)+1)
	landed = append(landed, captive)
	landed = append(landed, mover...)

	np.setStack(mv.From, nil)
	np.setStack(mv.Over, rest)
	np.setStack(mv.To, landed)

	nc := chain.clone()
	if nc == nil {
		nc = &Chain{LastDir: -1}
	}
	nc.From = mv.To
	nc.LastDir = dirIndexBetween(&np.Board, mv.From, mv.To)
	nc.Jumped |= 1 << uint(mv.Over)
	if top.Type() == PieceMan && np.Board.rowOf(mv.To) == promotionRow(top.Side(), np.Board.Size) {
		nc.Promote = true // 链中升变：资格先记着，收尾时才生效
	}
	return &np, nc, nil
}

// 跳棋吃法：被跳子按模式立即离场或留到链尾
func (p *Position) applyCheckersMove(mv Move, chain *Chain) (*Position, *Chain, error) {
	p.EnsureHash()
	mover := p.Board.Squares[mv.From]
	top := mover.Top()

	np := *p
	if !mv.Capture {
		if len(p.Board.Squares[mv.To]) != 0 {
			return nil, nil, fmt.Errorf("%w: landing square %d occupied", ErrStructural, mv.To)
		}
		moved := append(Stack(nil), mover...)
		if top.Type() == PieceMan && np.Board.rowOf(mv.To) == promotionRow(top.Side(), np.Board.Size) {
			moved[len(moved)-1] = makePiece(top.Side(), PieceOfficer)
		}
		np.setStack(mv.From, nil)
		np.setStack(mv.To, moved)
		np.bumpCounters(top.Type() == PieceMan, false)
		np.toggleSide()
		return &np, nil, nil
	}

	if err := p.validateCapture(mv, chain); err != nil {
		return nil, nil, err
	}

	np.setStack(mv.From, nil)
	if p.Removal == RemoveImmediate {
		np.setStack(mv.Over, nil)
	}
	np.setStack(mv.To, append(Stack(nil), mover...))

	nc := chain.clone()
	if nc == nil {
		nc = &Chain{LastDir: -1}
	}
	nc.From = mv.To
	nc.LastDir = dirIndexBetween(&np.Board, mv.From, mv.To)
	nc.Jumped |= 1 << uint(mv.Over)
	if top.Type() == PieceMan && np.Board.rowOf(mv.To) == promotionRow(top.Side(), np.Board.Size) {
		nc.Promote = true
	}
	return &np, nc, nil
}

// FinalizeChain 连跳收尾：补做延迟升变和延迟移除、清链内簿记、换边。
func (p *Position) FinalizeChain(chain *Chain) *Position {
	p.EnsureHash()
	np := *p
	if chain == nil {
		return &np
	}

	landing := np.Board.Squares[chain.From]
	top := landing.Top()
	manMoved := top.Type() == PieceMan || chain.Promote

	if chain.Promote && top.Type() == PieceMan {
		promoted := append(Stack(nil), landing...)
		promoted[len(promoted)-1] = makePiece(top.Side(), PieceOfficer)
		np.setStack(chain.From, promoted)
	}

	if np.Ruleset == RulesetCheckers && np.Removal == RemoveDeferred {
		for sq := 0; sq < np.Board.NumSquares(); sq++ {
			if chain.Jumped&(1<<uint(sq)) != 0 {
				np.setStack(sq, nil)
			}
		}
	}

	np.bumpCounters(manMoved, true)
	np.toggleSide()
	return &np
}

// bumpCounters 死局判定计数器：有吃子清零 QuietPlies，普通子动过清零 NoManPlies
func (p *Position) bumpCounters(manMoved, captured bool) {
	if captured {
		p.QuietPlies = 0
	} else {
		p.QuietPlies++
	}
	if manMoved {
		p.NoManPlies = 0
	} else {
		p.NoManPlies++
	}
}

// Step 便捷封装：应用一步，若没有后续连跳自动收尾。
// 返回的 chain 非 nil 表示同一方仍在连跳中。
func (p *Position) Step(mv Move, chain *Chain) (*Position, *Chain, error) {
	np, nc, err := p.ApplyMove(mv, chain)
	if err != nil {
		return nil, nil, err
	}
	if nc != nil {
		if len(np.GenerateCaptureMoves(nc)) == 0 {
			return np.FinalizeChain(nc), nil, nil
		}
	}
	return np, nc, nil
}
