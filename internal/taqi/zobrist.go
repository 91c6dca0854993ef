package taqi

import "sync"

const (
	zobristPieceTypes = 9  // PieceType 范围 [1..8]，0 保留空位不用
	zobristMaxDepth   = 24 // 柱子内的层数上限；更深的层折叠回来
)

var (
	zobristOnce sync.Once

	// 按（方、子类型、格子、柱内层数）取键：同一格上顺序不同 → 哈希不同
	zobristPieces [2][zobristPieceTypes][MaxSquares][zobristMaxDepth]uint64
	zobristSide   uint64
	zobristEP     [MaxSquares]uint64
	zobristCastle [2][2]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for pt := 1; pt < zobristPieceTypes; pt++ {
				for sq := 0; sq < MaxSquares; sq++ {
					for d := 0; d < zobristMaxDepth; d++ {
						zobristPieces[side][pt][sq][d] = next()
					}
				}
			}
		}
		zobristSide = next()
		for sq := 0; sq < MaxSquares; sq++ {
			zobristEP[sq] = next()
		}
		for s := 0; s < 2; s++ {
			for f := 0; f < 2; f++ {
				zobristCastle[s][f] = next()
			}
		}
	})
}

func pieceHashKey(pc Piece, sq, depth int) uint64 {
	if pc == 0 || sq < 0 || sq >= MaxSquares {
		return 0
	}

	var sideIdx int
	switch pc.Side() {
	case White:
		sideIdx = 0
	case Black:
		sideIdx = 1
	default:
		return 0
	}

	pt := int(pc.Type())
	if pt <= 0 || pt >= zobristPieceTypes {
		return 0
	}
	return zobristPieces[sideIdx][pt][sq][depth%zobristMaxDepth]
}

// stackHashKey 一整格柱子的键（底→顶逐层异或）
func stackHashKey(st Stack, sq int) uint64 {
	var h uint64
	for d, pc := range st {
		h ^= pieceHashKey(pc, sq, d)
	}
	return h
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		h ^= stackHashKey(p.Board.Squares[sq], sq)
	}
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	if p.EPSquare >= 0 && p.EPSquare < MaxSquares {
		h ^= zobristEP[p.EPSquare]
	}
	for s := 0; s < 2; s++ {
		for f := 0; f < 2; f++ {
			if p.Castling[s][f] {
				h ^= zobristCastle[s][f]
			}
		}
	}
	return h
}

// EnsureHash 确保 Position.Hash 已初始化；返回当前哈希值。
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
