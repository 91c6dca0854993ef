package taqi

const MaxSquares = 64 // 8x8 的上限；7x7 只用前 49 格

// Board 固定上限的格子数组 + 实际边长。Stack 是 slice：
// 复制 Position 只复制 64 个 slice header，改动哪格就为哪格新建 slice。
type Board struct {
	Squares [MaxSquares]Stack
	Size    int // 7 或 8
}

func (b *Board) NumSquares() int { return b.Size * b.Size }

func (b *Board) indexOf(row, col int) int { return row*b.Size + col }
func (b *Board) rowOf(sq int) int         { return sq / b.Size }
func (b *Board) colOf(sq int) int         { return sq % b.Size }

func (b *Board) onBoard(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

// playable 斜线棋类的可用格奇偶性。7x7 取 (r+c) 偶数（含四角），
// 8x8 取 (r+c) 奇数（暗格）：两种棋盘的角部/配色约定因此保持一致。
func playable(row, col, size int) bool {
	return (row+col)%2 == (size+1)%2
}

func (b *Board) playableSq(sq int) bool {
	return playable(b.rowOf(sq), b.colOf(sq), b.Size)
}

func opposite(side Side) Side {
	if side == White {
		return Black
	}
	if side == Black {
		return White
	}
	return NoSide
}

// 前进方向：白向上(-1)，黑向下(+1)
func forwardDir(side Side) int {
	if side == White {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 升变行：白 0 行，黑最后一行
func promotionRow(side Side, size int) int {
	if side == White {
		return 0
	}
	return size - 1
}

// 四个斜方向；dirIndex 0..3
var diagDirs = [4][2]int{
	{-1, -1}, // 左上
	{-1, +1}, // 右上
	{+1, -1}, // 左下
	{+1, +1}, // 右下
}

// sameOrReverseDir “之字形”约束用：同向或正反向都算
func sameOrReverseDir(a, b int) bool {
	if a < 0 || b < 0 {
		return false
	}
	return a == b || a == (3-b)
}

func boardSizeFor(rs Ruleset) int {
	if rs == RulesetLasca {
		return 7
	}
	return 8
}

// NewInitialPosition 按规则变体生成开局。白方先行。
func NewInitialPosition(rs Ruleset) *Position {
	pos := &Position{
		Ruleset:    rs,
		SideToMove: White,
		EPSquare:   -1,
		EPPawn:     -1,
	}
	pos.Board.Size = boardSizeFor(rs)

	switch rs {
	case RulesetLasca:
		setupDraughts(&pos.Board, 3) // 7x7：双方各 11 子（4+3+4）
	case RulesetCheckers, RulesetBashni:
		setupDraughts(&pos.Board, 3) // 8x8：双方各 12 子
	case RulesetChess, RulesetTowerChess:
		setupChess(&pos.Board)
		pos.Castling = CastleRights{{true, true}, {true, true}}
	}

	pos.Hash = pos.CalculateHash()
	return pos
}

// setupDraughts 黑方占顶部 rows 行、白方占底部 rows 行的可用格
func setupDraughts(b *Board, rows int) {
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if !playable(r, c, b.Size) {
				continue
			}
			sq := b.indexOf(r, c)
			if r < rows {
				b.Squares[sq] = Stack{makePiece(Black, PieceMan)}
			} else if r >= b.Size-rows {
				b.Squares[sq] = Stack{makePiece(White, PieceMan)}
			}
		}
	}
}

var chessBackRank = [8]PieceType{
	PieceRook, PieceKnight, PieceBishop, PieceQueen,
	PieceKing, PieceBishop, PieceKnight, PieceRook,
}

func setupChess(b *Board) {
	for c := 0; c < 8; c++ {
		b.Squares[b.indexOf(0, c)] = Stack{makePiece(Black, chessBackRank[c])}
		b.Squares[b.indexOf(1, c)] = Stack{makePiece(Black, PiecePawn)}
		b.Squares[b.indexOf(6, c)] = Stack{makePiece(White, PiecePawn)}
		b.Squares[b.indexOf(7, c)] = Stack{makePiece(White, chessBackRank[c])}
	}
}

// 王翼/后翼车的初始格（车权判定用）
func rookHomeSquare(side Side, flank int) int {
	row := 0
	if side == White {
		row = 7
	}
	col := 7 // 王翼
	if flank == 1 {
		col = 0 // 后翼
	}
	return row*8 + col
}

func kingHomeSquare(side Side) int {
	if side == White {
		return 7*8 + 4
	}
	return 4
}

// CountControlled 统计 side 控制（顶子属于 side）的格子数
func (p *Position) CountControlled(side Side) int {
	n := 0
	for sq := 0; sq < p.Board.NumSquares(); sq++ {
		if p.Board.Squares[sq].Side() == side {
			n++
		}
	}
	return n
}
