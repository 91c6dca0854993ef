package taqi

// 国际跳棋风格的走法生成（checkers 与 bashni 共用几何）：
//   - 兵：前进斜走一格；吃子可用全部四个斜方向（跳两格）。
//   - 官（飞子）：沿斜线任意远滑行；吃子 = 沿射线越过恰好一个敌子，
//     落在其后任意空格。连续两个子、或先遇到己方子，都会挡住射线。
//   - 连跳中官不得沿用上一跳的方向或其正反向（之字形约束）。
//   - 本链已跳过的格子（Jumped 掩码）不可再跳；延迟移除模式下那些子
//     仍留在盘上：它们照常挡路，但自身不可再被跳——这个不对称要保留。

func genDraughtsCapturesFrom(p *Position, from int, chain *Chain, moves *[]Move) {
	st := p.Board.Squares[from]
	top := st.Top()
	if top == 0 {
		return
	}
	side := top.Side()
	row, col := p.Board.rowOf(from), p.Board.colOf(from)

	var jumped uint64
	lastDir := -1
	if chain != nil {
		jumped = chain.Jumped
		lastDir = chain.LastDir
	}

	if top.Type() == PieceMan {
		// 兵：四个方向短跳
		for di := 0; di < 4; di++ {
			d := diagDirs[di]
			or, oc := row+d[0], col+d[1]
			tr, tc := row+2*d[0], col+2*d[1]
			if !p.Board.onBoard(tr, tc) {
				continue
			}
			over := p.Board.indexOf(or, oc)
			to := p.Board.indexOf(tr, tc)
			if jumped&(1<<uint(over)) != 0 {
				continue
			}
			if p.Board.Squares[over].Side() != opposite(side) {
				continue
			}
			if len(p.Board.Squares[to]) != 0 {
				continue
			}
			*moves = append(*moves, Move{From: from, To: to, Over: over, Capture: true})
		}
		return
	}

	// 官：飞吃
	for di := 0; di < 4; di++ {
		if sameOrReverseDir(di, lastDir) {
			continue
		}
		d := diagDirs[di]
		r, c := row+d[0], col+d[1]

		// 滑行阶段：走到第一个非空格
		for p.Board.onBoard(r, c) && len(p.Board.Squares[p.Board.indexOf(r, c)]) == 0 {
			r += d[0]
			c += d[1]
		}
		if !p.Board.onBoard(r, c) {
			continue
		}
		over := p.Board.indexOf(r, c)
		overStack := p.Board.Squares[over]
		if overStack.Side() != opposite(side) {
			continue // 己方子挡路
		}
		if jumped&(1<<uint(over)) != 0 {
			continue // 已跳过：挡路但不可再跳
		}

		// 落点阶段：敌子之后的连续空格都可落
		r += d[0]
		c += d[1]
		for p.Board.onBoard(r, c) {
			to := p.Board.indexOf(r, c)
			if len(p.Board.Squares[to]) != 0 {
				break // 两个子连排，射线到此为止
			}
			*moves = append(*moves, Move{From: from, To: to, Over: over, Capture: true})
			r += d[0]
			c += d[1]
		}
	}
}

func genDraughtsQuietFrom(p *Position, from int, moves *[]Move) {
	st := p.Board.Squares[from]
	top := st.Top()
	row, col := p.Board.rowOf(from), p.Board.colOf(from)

	if top.Type() == PieceMan {
		di := manDirIndexes(top.Side())
		for _, i := range di {
			d := diagDirs[i]
			tr, tc := row+d[0], col+d[1]
			if !p.Board.onBoard(tr, tc) {
				continue
			}
			to := p.Board.indexOf(tr, tc)
			if len(p.Board.Squares[to]) == 0 {
				*moves = append(*moves, Move{From: from, To: to, Over: -1})
			}
		}
		return
	}

	// 官：任意远滑行
	for di := 0; di < 4; di++ {
		d := diagDirs[di]
		r, c := row+d[0], col+d[1]
		for p.Board.onBoard(r, c) {
			to := p.Board.indexOf(r, c)
			if len(p.Board.Squares[to]) != 0 {
				break
			}
			*moves = append(*moves, Move{From: from, To: to, Over: -1})
			r += d[0]
			c += d[1]
		}
	}
}

// 未做最长吃过滤的原始吃子集合
func genDraughtsRawCaptures(p *Position, chain *Chain, moves *[]Move) {
	if chain != nil {
		genDraughtsCapturesFrom(p, chain.From, chain, moves)
		return
	}
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		if p.Board.Squares[sq].Side() != p.SideToMove {
			continue
		}
		genDraughtsCapturesFrom(p, sq, nil, moves)
	}
}

func genDraughtsQuiet(p *Position, moves *[]Move) {
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		if p.Board.Squares[sq].Side() != p.SideToMove {
			continue
		}
		genDraughtsQuietFrom(p, sq, moves)
	}
}
