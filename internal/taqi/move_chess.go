package taqi

// 国象走法。两个变体共用：chess 普通吃（被吃子离场），towerchess 叠吃
// （见 apply_chess.go）。都按顶子决定走法与归属，先生成伪合法，再用
// 模拟走子过滤掉让自家王暴露在攻击下的招。

var knightDirs = [8][2]int{
	{-2, -1}, {-2, +1}, {-1, -2}, {-1, +2},
	{+1, -2}, {+1, +2}, {+2, -1}, {+2, +1},
}

var rookDirs = [4][2]int{
	{-1, 0}, {+1, 0}, {0, -1}, {0, +1},
}

var kingDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, +1}, {0, -1},
	{0, +1}, {+1, -1}, {+1, 0}, {+1, +1},
}

// 兵的双步推进起始行
func pawnHomeRow(side Side) int {
	if side == White {
		return 6
	}
	return 1
}

func genChessSlides(p *Position, from int, dirs [][2]int, moves *[]Move) {
	side := p.Board.Squares[from].Side()
	row, col := p.Board.rowOf(from), p.Board.colOf(from)
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for p.Board.onBoard(r, c) {
			to := p.Board.indexOf(r, c)
			dst := p.Board.Squares[to]
			if len(dst) == 0 {
				*moves = append(*moves, Move{From: from, To: to, Over: -1})
				r += d[0]
				c += d[1]
				continue
			}
			if dst.Side() != side {
				*moves = append(*moves, Move{From: from, To: to, Over: to, Capture: true})
			}
			break
		}
	}
}

func genChessSteps(p *Position, from int, dirs [][2]int, moves *[]Move) {
	side := p.Board.Squares[from].Side()
	row, col := p.Board.rowOf(from), p.Board.colOf(from)
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		if !p.Board.onBoard(r, c) {
			continue
		}
		to := p.Board.indexOf(r, c)
		dst := p.Board.Squares[to]
		if len(dst) == 0 {
			*moves = append(*moves, Move{From: from, To: to, Over: -1})
		} else if dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to, Over: to, Capture: true})
		}
	}
}

func genChessPawnMoves(p *Position, from int, moves *[]Move) {
	side := p.Board.Squares[from].Side()
	row, col := p.Board.rowOf(from), p.Board.colOf(from)
	dir := forwardDir(side)

	// 直走（不吃）
	r := row + dir
	if p.Board.onBoard(r, col) {
		to := p.Board.indexOf(r, col)
		if len(p.Board.Squares[to]) == 0 {
			*moves = append(*moves, Move{From: from, To: to, Over: -1})
			if row == pawnHomeRow(side) {
				r2 := row + 2*dir
				to2 := p.Board.indexOf(r2, col)
				if len(p.Board.Squares[to2]) == 0 {
					*moves = append(*moves, Move{From: from, To: to2, Over: -1})
				}
			}
		}
	}

	// 斜吃 + 吃过路兵
	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if !p.Board.onBoard(r, c) {
			continue
		}
		to := p.Board.indexOf(r, c)
		dst := p.Board.Squares[to]
		if len(dst) != 0 && dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to, Over: to, Capture: true})
		} else if to == p.EPSquare && p.EPPawn >= 0 {
			*moves = append(*moves, Move{From: from, To: to, Over: p.EPPawn, Capture: true})
		}
	}
}

func genChessCastling(p *Position, from int, moves *[]Move) {
	side := p.Board.Squares[from].Side()
	if from != kingHomeSquare(side) {
		return
	}
	if p.IsAttacked(from, opposite(side)) {
		return // 被将军时不能易位
	}
	row := p.Board.rowOf(from)
	for flank := 0; flank < 2; flank++ {
		if !p.Castling[side][flank] {
			continue
		}
		rookSq := rookHomeSquare(side, flank)
		rookStack := p.Board.Squares[rookSq]
		if rookStack.Top().Type() != PieceRook || rookStack.Side() != side {
			continue
		}
		step := +1 // 王翼
		if flank == 1 {
			step = -1
		}
		// 王和车之间必须全空
		empty := true
		for c := p.Board.colOf(from) + step; c != p.Board.colOf(rookSq); c += step {
			if len(p.Board.Squares[p.Board.indexOf(row, c)]) != 0 {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		// 王经过的格子和落点不能被攻击
		mid := p.Board.indexOf(row, p.Board.colOf(from)+step)
		to := p.Board.indexOf(row, p.Board.colOf(from)+2*step)
		if p.IsAttacked(mid, opposite(side)) || p.IsAttacked(to, opposite(side)) {
			continue
		}
		*moves = append(*moves, Move{From: from, To: to, Over: -1})
	}
}

func genChessPseudoFrom(p *Position, from int, moves *[]Move) {
	switch p.Board.Squares[from].Top().Type() {
	case PiecePawn:
		genChessPawnMoves(p, from, moves)
	case PieceKnight:
		genChessSteps(p, from, knightDirs[:], moves)
	case PieceBishop:
		genChessSlides(p, from, diagDirs[:], moves)
	case PieceRook:
		genChessSlides(p, from, rookDirs[:], moves)
	case PieceQueen:
		genChessSlides(p, from, rookDirs[:], moves)
		genChessSlides(p, from, diagDirs[:], moves)
	case PieceKing:
		genChessSteps(p, from, kingDirs[:], moves)
		genChessCastling(p, from, moves)
	}
}

func genChessPseudo(p *Position, moves *[]Move) {
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		if p.Board.Squares[sq].Side() != p.SideToMove {
			continue
		}
		genChessPseudoFrom(p, sq, moves)
	}
}

// IsAttacked 判断 sq 是否被 bySide 攻击。直接按攻击模式扫，不走伪合法
// 生成（兵的直走不算攻击）。
func (p *Position) IsAttacked(sq int, bySide Side) bool {
	row, col := p.Board.rowOf(sq), p.Board.colOf(sq)

	at := func(r, c int) Stack {
		if !p.Board.onBoard(r, c) {
			return nil
		}
		return p.Board.Squares[p.Board.indexOf(r, c)]
	}
	isBy := func(st Stack, pt PieceType) bool {
		return st.Side() == bySide && st.Top().Type() == pt
	}

	// 兵：从 bySide 的视角斜前一格打到 sq
	pr := row - forwardDir(bySide)
	for _, dc := range [2]int{-1, +1} {
		if st := at(pr, col+dc); isBy(st, PiecePawn) {
			return true
		}
	}
	// 马
	for _, d := range knightDirs {
		if st := at(row+d[0], col+d[1]); isBy(st, PieceKnight) {
			return true
		}
	}
	// 王
	for _, d := range kingDirs {
		if st := at(row+d[0], col+d[1]); isBy(st, PieceKing) {
			return true
		}
	}
	// 直线：车/后
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		for p.Board.onBoard(r, c) {
			st := p.Board.Squares[p.Board.indexOf(r, c)]
			if len(st) != 0 {
				if st.Side() == bySide {
					pt := st.Top().Type()
					if pt == PieceRook || pt == PieceQueen {
						return true
					}
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	// 斜线：象/后
	for _, d := range diagDirs {
		r, c := row+d[0], col+d[1]
		for p.Board.onBoard(r, c) {
			st := p.Board.Squares[p.Board.indexOf(r, c)]
			if len(st) != 0 {
				if st.Side() == bySide {
					pt := st.Top().Type()
					if pt == PieceBishop || pt == PieceQueen {
						return true
					}
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return false
}

// IsInCheck 王不在时返回 false：搜索推演中可能经过这种残缺局面，
// 按“没得将”处理而不是报错。
func (p *Position) IsInCheck(side Side) bool {
	kingSq := p.findKing(side)
	if kingSq < 0 {
		return false
	}
	return p.IsAttacked(kingSq, opposite(side))
}

func (p *Position) findKing(side Side) int {
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		st := p.Board.Squares[sq]
		if st.Side() == side && st.Top().Type() == PieceKing {
			return sq
		}
	}
	return -1
}

// 伪合法 → 合法：模拟走一步，拒绝让自家王被攻击的招；towerchess 还要
// 过滤“劫”——吃子后复现上一吃之前的局面。
func genChessLegal(p *Position, moves *[]Move) {
	var pseudo []Move
	genChessPseudo(p, &pseudo)
	side := p.SideToMove

	for _, mv := range pseudo {
		np, _, err := p.ApplyMove(mv, nil)
		if err != nil {
			continue
		}
		if np.IsInCheck(side) {
			continue
		}
		if p.Ruleset == RulesetTowerChess && mv.Capture && p.KoHash != 0 && np.Hash == p.KoHash {
			continue // 劫：禁止立刻复现吃子前的局面
		}
		*moves = append(*moves, mv)
	}
}
