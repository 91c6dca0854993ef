package taqi

type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

type PieceType int8

const (
	PieceNone    PieceType = iota
	PieceMan               // 兵（跳棋类的普通子）
	PieceOfficer           // 官（升变后的兵/王棋）
	PiecePawn              // 国象兵
	PieceKnight            // 马
	PieceBishop            // 象
	PieceRook              // 车
	PieceQueen             // 后
	PieceKing              // 王
)

type Piece int8 // 0=空；>0 白；<0 黑；abs=PieceType

func makePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	if side == White {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return White
	}
	return Black
}

// Stack 一格上的柱子，底→顶排列；最后一个元素是顶子，决定归属
type Stack []Piece

func (s Stack) Top() Piece {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

func (s Stack) Side() Side { return s.Top().Side() }

// Ruleset 规则变体（封闭集合，boundary switch 分发）
type Ruleset int8

const (
	RulesetLasca      Ruleset = iota // 7x7 叠棋
	RulesetCheckers                  // 8x8 国际跳棋（不叠子）
	RulesetBashni                    // 8x8 塔棋（叠子+跳棋走法）
	RulesetChess                     // 8x8 国象
	RulesetTowerChess                // 8x8 叠子国象 + 劫
)

// RemovalMode 跳棋吃子的移除时机
type RemovalMode int8

const (
	RemoveImmediate RemovalMode = iota // 跳完一跳立即拿掉
	RemoveDeferred                     // 链结束才拿掉（中途仍占格，但不可再被跳）
)

// CastleRights [side][flank]；flank 0=王翼(短) 1=后翼(长)
type CastleRights [2][2]bool

type Move struct {
	From    int  `json:"from"`
	To      int  `json:"to"`
	Over    int  `json:"over"` // 被跳过的格子；非吃子步为 -1
	Capture bool `json:"capture"`
	Score   int  `json:"-"` // 搜索排序用，不序列化
}

// Chain 连跳进行中的约束：锁定的起点、上一跳方向、已跳过格子的位掩码、
// 途中是否已获得升变资格。nil 表示没有连跳在进行。
type Chain struct {
	From    int
	LastDir int // dirIndex；-1 表示还没有方向约束
	Jumped  uint64
	Promote bool
}

func (c *Chain) clone() *Chain {
	if c == nil {
		return nil
	}
	nc := *c
	return &nc
}

// Position = 棋盘 + 轮到谁走 + 规则变体 + 各变体的附属状态。
// 不可变：ApplyMove 永远返回新的 Position。
type Position struct {
	Board      Board
	SideToMove Side
	Ruleset    Ruleset
	Removal    RemovalMode

	Castling CastleRights
	EPSquare int // 吃过路兵目标格；-1 无
	EPPawn   int // 刚双步推进的兵所在格；-1 无
	KoHash   uint64

	// 死局判定计数：连续无吃子的 ply 数 / 连续没有普通子（未升变）动过的 ply 数
	QuietPlies   int
	NoManPlies   int

	Hash uint64
}
