package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter 挂载全部 API 路由和静态文件服务
func NewRouter(h *Handler, webDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	r.Post("/api/new_game", h.HandleNewGame)
	r.Post("/api/play", h.HandlePlay)
	r.Post("/api/state", h.HandleState)
	r.Post("/api/ai_move", h.HandleAiMove)

	r.Get("/ws/analysis", h.HandleAnalysisWS)

	if webDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(webDir)))
	}

	return r
}
