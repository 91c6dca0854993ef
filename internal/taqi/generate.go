package taqi

// GenerateCaptureMoves 生成当前走子方（或链中被锁定棋子）的吃子步。
// checkers / bashni 还要做“最长吃”过滤：只保留全局最长吃序列的第一跳。
func (p *Position) GenerateCaptureMoves(chain *Chain) []Move {
	var moves []Move
	switch p.Ruleset {
	case RulesetLasca:
		genLascaCaptures(p, chain, &moves)
	case RulesetCheckers:
		genDraughtsRawCaptures(p, chain, &moves)
		moves = p.filterMaxCaptures(moves, chain)
	case RulesetBashni:
		genBashniRawCaptures(p, chain, &moves)
		moves = p.filterMaxCaptures(moves, chain)
	case RulesetChess, RulesetTowerChess:
		var legal []Move
		genChessLegal(p, &legal)
		for _, mv := range legal {
			if mv.Capture {
				moves = append(moves, mv)
			}
		}
	}
	return moves
}

// GenerateLegalMoves 生成全部合法步。跳棋类强制吃：只要存在吃子步，
// 安静步一律不合法。链进行中只有被锁定棋子的吃子步。
func (p *Position) GenerateLegalMoves(chain *Chain) []Move {
	switch p.Ruleset {
	case RulesetChess, RulesetTowerChess:
		var moves []Move
		genChessLegal(p, &moves)
		return moves
	}

	captures := p.GenerateCaptureMoves(chain)
	if chain != nil || len(captures) > 0 {
		return captures
	}

	var moves []Move
	switch p.Ruleset {
	case RulesetLasca:
		genLascaQuiet(p, &moves)
	case RulesetCheckers:
		genDraughtsQuiet(p, &moves)
	case RulesetBashni:
		genBashniQuiet(p, &moves)
	}
	return moves
}

// ---------- 最长吃 ----------

// capMemoKey 记忆化键必须覆盖影响递归结果的全部输入：局面哈希、锁定
// 起点、已跳掩码、上一跳方向。少一个都会在分支间串味。
func capMemoKey(p *Position, chain *Chain) uint64 {
	const prime64 = 1099511628211
	h := p.EnsureHash()
	h = (h ^ uint64(chain.From+1)) * prime64
	h = (h ^ chain.Jumped) * prime64
	h = (h ^ uint64(chain.LastDir+2)) * prime64
	return h
}

// filterMaxCaptures 对每个第一跳递归算出最长延续，只留 1+延续 等于
// 全局最大值的候选。记忆化表只活在这一次调用里。
func (p *Position) filterMaxCaptures(raw []Move, chain *Chain) []Move {
	if len(raw) <= 1 {
		return raw
	}
	memo := make(map[uint64]int)
	lens := make([]int, len(raw))
	best := 0
	for i, mv := range raw {
		np, nc, err := p.ApplyMove(mv, chain)
		if err != nil {
			continue
		}
		lens[i] = 1 + maxContinuation(np, nc, memo)
		if lens[i] > best {
			best = lens[i]
		}
	}
	out := raw[:0]
	for i, mv := range raw {
		if lens[i] == best {
			out = append(out, mv)
		}
	}
	return out
}

func maxContinuation(p *Position, chain *Chain, memo map[uint64]int) int {
	key := capMemoKey(p, chain)
	if v, ok := memo[key]; ok {
		return v
	}
	var raw []Move
	genDraughtsRawCaptures(p, chain, &raw)
	best := 0
	for _, mv := range raw {
		np, nc, err := p.ApplyMove(mv, chain)
		if err != nil {
			continue
		}
		if l := 1 + maxContinuation(np, nc, memo); l > best {
			best = l
		}
	}
	memo[key] = best
	return best
}
