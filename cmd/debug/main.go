package main

import (
	"flag"
	"fmt"
	"log"

	"taqi/internal/taqi"
)

func main() {
	fen := flag.String("fen", "", "position to inspect, empty = initial position")
	ruleset := flag.String("ruleset", "lasca", "ruleset for the initial position")
	flag.Parse()

	var pos *taqi.Position
	if *fen != "" {
		p, err := taqi.DecodePosition(*fen)
		if err != nil {
			log.Fatalf("decode failed: %v", err)
		}
		pos = p
	} else {
		rs, removal, err := taqi.ParseRuleset(*ruleset)
		if err != nil {
			log.Fatalf("bad ruleset %q: %v", *ruleset, err)
		}
		pos = taqi.NewInitialPosition(rs)
		pos.Removal = removal
	}

	fmt.Println("FEN:", pos.Encode())
	moves := pos.GenerateLegalMoves(nil)
	fmt.Println("Legal moves:", len(moves))
	for _, mv := range moves {
		if mv.Capture {
			fmt.Printf("  capture %d -> %d (over %d)\n", mv.From, mv.To, mv.Over)
		} else {
			fmt.Printf("  move %d -> %d\n", mv.From, mv.To)
		}
	}
}
