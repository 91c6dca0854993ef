package taqi

// 拉斯卡棋（7x7 叠棋）：兵只能向前斜走/斜跳一格，官四个斜方向各一格。
// 吃法 = 跳过相邻的敌方顶子柱，落在正后方的空格上；被跳柱的顶子钻到
// 跳子柱的最底下（俘虏），而不是离场。

// manDirIndexes 兵的前进方向在 diagDirs 里的下标
func manDirIndexes(side Side) [2]int {
	if side == White {
		return [2]int{0, 1}
	}
	return [2]int{2, 3}
}

func genLascaCapturesFrom(p *Position, from int, chain *Chain, moves *[]Move) {
	st := p.Board.Squares[from]
	top := st.Top()
	if top == 0 {
		return
	}
	row, col := p.Board.rowOf(from), p.Board.colOf(from)

	dirs := []int{0, 1, 2, 3}
	if top.Type() == PieceMan {
		di := manDirIndexes(top.Side())
		dirs = di[:]
	}

	for _, di := range dirs {
		d := diagDirs[di]
		or, oc := row+d[0], col+d[1]
		tr, tc := row+2*d[0], col+2*d[1]
		if !p.Board.onBoard(tr, tc) {
			continue
		}
		over := p.Board.indexOf(or, oc)
		to := p.Board.indexOf(tr, tc)
		if chain != nil && chain.Jumped&(1<<uint(over)) != 0 {
			continue // 本链里已经跳过的格子不能再跳
		}
		if p.Board.Squares[over].Side() != opposite(top.Side()) {
			continue
		}
		if len(p.Board.Squares[to]) != 0 {
			continue
		}
		*moves = append(*moves, Move{From: from, To: to, Over: over, Capture: true})
	}
}

func genLascaQuietFrom(p *Position, from int, moves *[]Move) {
	st := p.Board.Squares[from]
	top := st.Top()
	row, col := p.Board.rowOf(from), p.Board.colOf(from)

	dirs := []int{0, 1, 2, 3}
	if top.Type() == PieceMan {
		di := manDirIndexes(top.Side())
		dirs = di[:]
	}

	for _, di := range dirs {
		d := diagDirs[di]
		tr, tc := row+d[0], col+d[1]
		if !p.Board.onBoard(tr, tc) {
			continue
		}
		to := p.Board.indexOf(tr, tc)
		if len(p.Board.Squares[to]) == 0 {
			*moves = append(*moves, Move{From: from, To: to, Over: -1})
		}
	}
}

func genLascaCaptures(p *Position, chain *Chain, moves *[]Move) {
	if chain != nil {
		genLascaCapturesFrom(p, chain.From, chain, moves)
		return
	}
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		if p.Board.Squares[sq].Side() != p.SideToMove {
			continue
		}
		genLascaCapturesFrom(p, sq, nil, moves)
	}
}

func genLascaQuiet(p *Position, moves *[]Move) {
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		if p.Board.Squares[sq].Side() != p.SideToMove {
			continue
		}
		genLascaQuietFrom(p, sq, moves)
	}
}
