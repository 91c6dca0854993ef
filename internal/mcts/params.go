package mcts

import (
	"math"
	"time"
)

type SearchParams struct {
	Simulations int
	MaxTime     time.Duration
	NumThreads  int

	CpuctExploration     float64
	CpuctExplorationBase float64
	CpuctExplorationLog  float64

	FpuReductionMax float64

	// 静态评估压缩到 (-1,1) 的尺度，越大越迟钝
	EvalScale float64
}

func DefaultParams() SearchParams {
	return SearchParams{
		Simulations:          800,
		MaxTime:              5 * time.Second,
		NumThreads:           8,
		CpuctExploration:     1.1,
		CpuctExplorationBase: 10000.0,
		CpuctExplorationLog:  0.4,
		FpuReductionMax:      0.2,
		EvalScale:            400.0,
	}
}

func (p *SearchParams) GetCpuct(totalChildWeight float64) float64 {
	return p.CpuctExploration + p.CpuctExplorationLog*math.Log((totalChildWeight+p.CpuctExplorationBase)/p.CpuctExplorationBase)
}
