package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Engine 本身不带可变搜索状态：TT 和节点计数都挂在每次 Search
// 内部的局部引擎上，所以同一个 Engine 可以被多个请求并发调用。
type Engine struct {
	tt     map[uint64]ttEntry // TT 在 tt.go 定义；只有局部引擎才有
	nodes  int64
	qnodes int64 // 静态搜索节点计数（每个引擎实例各自数）

	rngMu sync.Mutex
	rng   *rand.Rand // 低难度随机选步用
}

func NewEngine() *Engine {
	return &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newLocalEngine 根节点并行时每个分支独享的引擎：自己的 TT，不用加锁
func newLocalEngine() *Engine {
	return &Engine{
		tt: make(map[uint64]ttEntry, 1<<14),
	}
}
