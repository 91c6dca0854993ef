package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// 实时分析推送：每次 AI 搜索完成后把诊断广播给挂着的前端

type AnalysisPayload struct {
	GameID  string `json:"game_id,omitempty"`
	Depth   int    `json:"depth"`
	Nodes   int64  `json:"nodes"`
	TimeMs  int64  `json:"time_ms"`
	Score   int    `json:"score"`
	HasMove bool   `json:"has_move"`
}

type AnalysisHub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]struct{}
	broadcast chan AnalysisPayload
}

func NewAnalysisHub() *AnalysisHub {
	return &AnalysisHub{
		clients:   make(map[*websocket.Conn]struct{}),
		broadcast: make(chan AnalysisPayload, 64),
	}
}

func (h *AnalysisHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(payload); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish 不阻塞：没人收就丢掉
func (h *AnalysisHub) Publish(payload AnalysisPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // 本地服务
}

func (h *Handler) HandleAnalysisWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	h.hub.mu.Lock()
	h.hub.clients[conn] = struct{}{}
	h.hub.mu.Unlock()

	// 读循环只为发现断连
	go func() {
		defer func() {
			h.hub.mu.Lock()
			delete(h.hub.clients, conn)
			h.hub.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
