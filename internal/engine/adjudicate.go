package engine

import "taqi/internal/taqi"

// 死局裁定：长时间没进展的对局按阶梯强制判结果。
// 只读核心输出（控制子数、子力和、评估符号），不碰规则内部。

const (
	// 连续这么多 ply 没有吃子就触发裁定
	DeadPlayQuietThreshold = 60
	// 连续这么多 ply 没有未升变的子动过也触发
	DeadPlayNoManThreshold = 40
)

type Adjudication struct {
	Over   bool
	Winner taqi.Side // NoSide = 判和
	Reason string
}

// Adjudicate 阶梯：控制子数 → 子力和 → 评估符号 → 和棋
func Adjudicate(pos *taqi.Position) Adjudication {
	if pos.QuietPlies < DeadPlayQuietThreshold && pos.NoManPlies < DeadPlayNoManThreshold {
		return Adjudication{}
	}

	wc := pos.CountControlled(taqi.White)
	bc := pos.CountControlled(taqi.Black)
	if wc != bc {
		return adjWinner(wc > bc, "piece_count")
	}

	wm := MaterialSum(pos, taqi.White)
	bm := MaterialSum(pos, taqi.Black)
	if wm != bm {
		return adjWinner(wm > bm, "material")
	}

	if ev := Evaluate(pos, taqi.White); ev != 0 {
		return adjWinner(ev > 0, "evaluation")
	}

	return Adjudication{Over: true, Winner: taqi.NoSide, Reason: "dead_draw"}
}

func adjWinner(white bool, reason string) Adjudication {
	w := taqi.Black
	if white {
		w = taqi.White
	}
	return Adjudication{Over: true, Winner: w, Reason: reason}
}
