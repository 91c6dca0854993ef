package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"taqi/internal/engine"
	"taqi/internal/mcts"
	"taqi/internal/taqi"
)

type PlayerConfig struct {
	Name    string
	UseMCTS bool
	Cfg     engine.SearchConfig
	Params  mcts.SearchParams
}

func main() {
	ruleset := flag.String("ruleset", "lasca", "ruleset: lasca / checkers / checkers+d / bashni / chess / towerchess")
	totalGames := flag.Int("games", 10, "number of games to play")
	abDepth := flag.Int("ab-depth", 5, "alpha-beta search depth")
	mctsSims := flag.Int("mcts-sims", 2000, "MCTS simulation count")
	pprofAddr := flag.String("pprof", "", "pprof listen address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	rs, removal, err := taqi.ParseRuleset(*ruleset)
	if err != nil {
		log.Fatalf("bad ruleset %q: %v", *ruleset, err)
	}

	e := engine.NewEngine()

	playerAB := PlayerConfig{
		Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *abDepth),
		Cfg: engine.SearchConfig{
			MaxDepth:  *abDepth,
			TimeLimit: 5 * time.Second,
		},
	}

	mctsParams := mcts.DefaultParams()
	mctsParams.Simulations = *mctsSims
	playerMCTS := PlayerConfig{
		Name:    fmt.Sprintf("MCTS (%d Sims)", *mctsSims),
		UseMCTS: true,
		Params:  mctsParams,
	}

	abWins := 0
	mctsWins := 0
	draws := 0

	for g := 0; g < *totalGames; g++ {
		var white, black PlayerConfig
		if g%2 == 0 {
			white, black = playerAB, playerMCTS
		} else {
			white, black = playerMCTS, playerAB
		}

		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		winner := playGame(e, rs, removal, white, black)

		switch {
		case winner == taqi.White && g%2 == 0, winner == taqi.Black && g%2 != 0:
			abWins++
			fmt.Printf("Result: %s Wins!\n", playerAB.Name)
		case winner == taqi.White || winner == taqi.Black:
			mctsWins++
			fmt.Printf("Result: %s Wins!\n", playerMCTS.Name)
		default:
			draws++
			fmt.Println("Result: Draw")
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", playerAB.Name, abWins)
	fmt.Printf("%s: %d\n", playerMCTS.Name, mctsWins)
	fmt.Printf("Draws: %d\n", draws)
}

func playGame(e *engine.Engine, rs taqi.Ruleset, removal taqi.RemovalMode, white, black PlayerConfig) taqi.Side {
	pos := taqi.NewInitialPosition(rs)
	pos.Removal = removal
	var chain *taqi.Chain
	maxSteps := 600 // 防止死循环

	for i := 0; i < maxSteps; i++ {
		if adj := engine.Adjudicate(pos); adj.Over {
			fmt.Printf("Adjudicated: %s\n", adj.Reason)
			return adj.Winner
		}

		player := white
		if pos.SideToMove == taqi.Black {
			player = black
		}

		var mv taqi.Move
		var ok bool
		if player.UseMCTS {
			res := mcts.NewSearcher(player.Params).Search(pos, chain)
			mv, ok = res.BestMove, res.HasMove
		} else {
			res := e.Search(pos, chain, player.Cfg)
			mv, ok = res.BestMove, res.HasMove
		}

		if !ok {
			// 无子可动，当前方输
			if pos.SideToMove == taqi.White {
				return taqi.Black
			}
			return taqi.White
		}

		np, nc, err := pos.Step(mv, chain)
		if err != nil {
			fmt.Printf("Error: invalid move %+v: %v\n", mv, err)
			return taqi.NoSide
		}
		pos, chain = np, nc
	}
	return taqi.NoSide
}
