package engine

import "taqi/internal/taqi"

// 简单 TT 条目
type ttEntry struct {
	Key   uint64
	Depth int
	Score int
	Move  taqi.Move
}

func (e *Engine) storeTT(key uint64, depth int, score int, mv taqi.Move) {
	if len(e.tt) > 1_000_000 {
		e.tt = make(map[uint64]ttEntry, 1<<16)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Score: score,
			Move:  mv,
		}
	}
}

// hashNode 搜索节点 =（局面，连跳约束）。链的每个字段都得进键，
// 否则同一局面在不同链约束下会串味。
func hashNode(p *taqi.Position, chain *taqi.Chain) uint64 {
	const prime64 = 1099511628211
	h := p.EnsureHash()
	if chain != nil {
		h = (h ^ uint64(chain.From+1)) * prime64
		h = (h ^ chain.Jumped) * prime64
		h = (h ^ uint64(chain.LastDir+2)) * prime64
		if chain.Promote {
			h = (h ^ 1) * prime64
		}
	}
	return h
}
