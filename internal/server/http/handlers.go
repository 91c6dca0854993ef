package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"taqi/internal/engine"
	"taqi/internal/server/game"
	"taqi/internal/taqi"
)

type Handler struct {
	mgr *game.Manager
	eng *engine.Engine
	hub *AnalysisHub
	log zerolog.Logger
}

func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		mgr: game.NewManager(),
		eng: engine.NewEngine(),
		hub: NewAnalysisHub(),
		log: log,
	}
}

func (h *Handler) Hub() *AnalysisHub { return h.hub }

func writeJSON(h *Handler, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("writeJSON failed")
	}
}

// gameStatus 无招可走 = 走子方输；长期无进展走死局裁定阶梯
func gameStatus(pos *taqi.Position, chain *taqi.Chain) string {
	if len(pos.GenerateLegalMoves(chain)) == 0 {
		if pos.SideToMove == taqi.White {
			return "black_wins"
		}
		return "white_wins"
	}
	if adj := engine.Adjudicate(pos); adj.Over {
		switch adj.Winner {
		case taqi.White:
			return "white_wins_" + adj.Reason
		case taqi.Black:
			return "black_wins_" + adj.Reason
		default:
			return "draw_" + adj.Reason
		}
	}
	return "ongoing"
}

func (h *Handler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Ruleset == "" {
		req.Ruleset = "lasca"
	}
	rs, removal, err := taqi.ParseRuleset(req.Ruleset)
	if err != nil {
		http.Error(w, "unknown ruleset", http.StatusBadRequest)
		return
	}

	g := h.mgr.NewGame(rs, removal)
	h.log.Info().Str("game_id", g.ID).Str("ruleset", req.Ruleset).Msg("new game")

	writeJSON(h, w, NewGameResponse{
		GameID:     g.ID,
		Position:   g.Pos.Encode(),
		ToMove:     sideToInt(g.Pos.SideToMove),
		LegalMoves: movesToDTO(g.Pos.GenerateLegalMoves(nil)),
	})
}

func (h *Handler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	g, err := h.mgr.Get(req.GameID)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	pos, chain := g.Pos, g.Chain
	mv := dtoToMove(req.Move)

	// 确认是当前合法招之一
	legal := pos.GenerateLegalMoves(chain)
	found := false
	for _, lm := range legal {
		if lm.From == mv.From && lm.To == mv.To && lm.Over == mv.Over && lm.Capture == mv.Capture {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "illegal move", http.StatusBadRequest)
		return
	}

	newPos, newChain, err := pos.Step(mv, chain)
	if err != nil {
		if errors.Is(err, taqi.ErrStructural) || errors.Is(err, taqi.ErrRuleset) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "apply move failed", http.StatusInternalServerError)
		return
	}

	if err := h.mgr.Update(req.GameID, newPos, newChain); err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	writeJSON(h, w, PlayResponse{
		Position:   newPos.Encode(),
		ToMove:     sideToInt(newPos.SideToMove),
		LegalMoves: movesToDTO(newPos.GenerateLegalMoves(newChain)),
		Chain:      chainToDTO(newChain),
		Status:     gameStatus(newPos, newChain),
	})
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	g, err := h.mgr.Get(req.GameID)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	writeJSON(h, w, StateResponse{
		Position:   g.Pos.Encode(),
		ToMove:     sideToInt(g.Pos.SideToMove),
		LegalMoves: movesToDTO(g.Pos.GenerateLegalMoves(g.Chain)),
		Chain:      chainToDTO(g.Chain),
		Status:     gameStatus(g.Pos, g.Chain),
	})
}

func (h *Handler) HandleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var pos *taqi.Position
	chain := dtoToChain(req.Chain)
	switch {
	case req.GameID != "":
		g, err := h.mgr.Get(req.GameID)
		if err != nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		pos = g.Pos
		if req.Chain == nil {
			chain = g.Chain
		}
	case req.Position != "":
		var err error
		pos, err = taqi.DecodePosition(req.Position)
		if err != nil {
			http.Error(w, "invalid position", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "missing game_id or position", http.StatusBadRequest)
		return
	}

	if req.Chain != nil && !chainInRange(chain, pos.Board.NumSquares()) {
		http.Error(w, "invalid chain", http.StatusBadRequest)
		return
	}

	var mv taqi.Move
	var hasMove bool
	var res engine.SearchResult

	if level, ok := engine.ParseLevel(req.Difficulty); ok {
		mv, hasMove, res = h.eng.ChooseMove(pos, chain, level)
	} else {
		depth := req.MaxDepth
		if depth <= 0 {
			depth = 4
		}
		var limit time.Duration
		if req.TimeMs > 0 {
			limit = time.Duration(req.TimeMs) * time.Millisecond
		}
		res = h.eng.Search(pos, chain, engine.SearchConfig{MaxDepth: depth, TimeLimit: limit})
		mv, hasMove = res.BestMove, res.HasMove
	}

	h.hub.Publish(AnalysisPayload{
		GameID:  req.GameID,
		Depth:   res.Depth,
		Nodes:   res.Nodes,
		TimeMs:  res.TimeUsed.Milliseconds(),
		Score:   res.Score,
		HasMove: hasMove,
	})

	if !hasMove {
		writeJSON(h, w, AiMoveResponse{
			BestMove: nil,
			Score:    res.Score,
			Depth:    res.Depth,
			Nodes:    res.Nodes,
			TimeMs:   res.TimeUsed.Milliseconds(),
			Position: pos.Encode(),
			ToMove:   sideToInt(pos.SideToMove),
			Status:   "no_moves",
		})
		return
	}

	// AI 落子（自动收链尾）；给 game_id 的同时更新对局
	newPos, newChain, err := pos.Step(mv, chain)
	if err != nil {
		h.log.Error().Err(err).Msg("ai move apply failed")
		http.Error(w, "apply move failed", http.StatusInternalServerError)
		return
	}
	if req.GameID != "" {
		_ = h.mgr.Update(req.GameID, newPos, newChain)
	}

	dto := moveToDTO(mv)
	writeJSON(h, w, AiMoveResponse{
		BestMove:   &dto,
		Score:      res.Score,
		Depth:      res.Depth,
		Nodes:      res.Nodes,
		TimeMs:     res.TimeUsed.Milliseconds(),
		Position:   newPos.Encode(),
		ToMove:     sideToInt(newPos.SideToMove),
		LegalMoves: movesToDTO(newPos.GenerateLegalMoves(newChain)),
		Chain:      chainToDTO(newChain),
		Status:     gameStatus(newPos, newChain),
	})
}
