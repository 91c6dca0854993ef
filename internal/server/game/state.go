package game

import (
	"time"

	"taqi/internal/taqi"
)

// GameState 一局棋：当前局面 + 进行中的连跳（nil 表示没有）
type GameState struct {
	ID        string
	Pos       *taqi.Position
	Chain     *taqi.Chain
	CreatedAt time.Time
	UpdatedAt time.Time
}
