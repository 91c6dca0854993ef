package httpserver

import "taqi/internal/taqi"

// 走法的对外词汇就两种：{"kind":"move"} 和 {"kind":"capture"}
type MoveDTO struct {
	Kind string `json:"kind"`
	From int    `json:"from"`
	Over int    `json:"over,omitempty"`
	To   int    `json:"to"`
}

func moveToDTO(m taqi.Move) MoveDTO {
	if m.Capture {
		return MoveDTO{Kind: "capture", From: m.From, Over: m.Over, To: m.To}
	}
	return MoveDTO{Kind: "move", From: m.From, To: m.To}
}

func dtoToMove(m MoveDTO) taqi.Move {
	if m.Kind == "capture" {
		return taqi.Move{From: m.From, To: m.To, Over: m.Over, Capture: true}
	}
	return taqi.Move{From: m.From, To: m.To, Over: -1}
}

func movesToDTO(ms []taqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// ChainDTO 连跳约束跨进程传递：锁定起点、上一跳方向、已跳过的格子
type ChainDTO struct {
	From    int   `json:"from"`
	LastDir int   `json:"last_dir"`
	Jumped  []int `json:"jumped"`
	Promote bool  `json:"promote"`
}

func chainToDTO(c *taqi.Chain) *ChainDTO {
	if c == nil {
		return nil
	}
	dto := &ChainDTO{From: c.From, LastDir: c.LastDir, Promote: c.Promote}
	for sq := 0; sq < 64; sq++ {
		if c.Jumped&(1<<uint(sq)) != 0 {
			dto.Jumped = append(dto.Jumped, sq)
		}
	}
	return dto
}

func dtoToChain(dto *ChainDTO) *taqi.Chain {
	if dto == nil {
		return nil
	}
	c := &taqi.Chain{From: dto.From, LastDir: dto.LastDir, Promote: dto.Promote}
	for _, sq := range dto.Jumped {
		if sq >= 0 && sq < 64 {
			c.Jumped |= 1 << uint(sq)
		}
	}
	return c
}

// chainInRange 网络来的链约束先查范围：锁定起点得在棋盘内，
// 方向只有 0..3（-1 = 尚无方向）
func chainInRange(c *taqi.Chain, numSquares int) bool {
	if c == nil {
		return true
	}
	if c.From < 0 || c.From >= numSquares {
		return false
	}
	return c.LastDir >= -1 && c.LastDir <= 3
}

func sideToInt(s taqi.Side) int {
	switch s {
	case taqi.White:
		return 0
	case taqi.Black:
		return 1
	default:
		return -1
	}
}

type NewGameRequest struct {
	Ruleset string `json:"ruleset"` // lasca / checkers / checkers+d / bashni / chess / towerchess
}

type NewGameResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"`
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type PlayResponse struct {
	Position   string    `json:"position"`
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Chain      *ChainDTO `json:"chain,omitempty"` // 非空：同一方继续连跳
	Status     string    `json:"status"`
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

type StateResponse struct {
	Position   string    `json:"position"`
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Chain      *ChainDTO `json:"chain,omitempty"`
	Status     string    `json:"status"`
}

// AiMoveRequest 让 AI 思考一步。难度档位或手动 depth/time 二选一；
// Chain 非空表示从连跳中途恢复搜索。
type AiMoveRequest struct {
	GameID     string    `json:"game_id,omitempty"`
	Position   string    `json:"position,omitempty"` // 不给 game_id 就直接传局面
	Difficulty string    `json:"difficulty,omitempty"`
	MaxDepth   int       `json:"max_depth,omitempty"`
	TimeMs     int64     `json:"time_ms,omitempty"`
	Chain      *ChainDTO `json:"chain,omitempty"`
}

type AiMoveResponse struct {
	BestMove   *MoveDTO  `json:"best_move"` // null = 无招可走
	Score      int       `json:"score"`
	Depth      int       `json:"depth"`
	Nodes      int64     `json:"nodes"`
	TimeMs     int64     `json:"time_ms"`
	Position   string    `json:"position"` // AI 落子后局面（含自动收链尾）
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Chain      *ChainDTO `json:"chain,omitempty"`
	Status     string    `json:"status"`
}
