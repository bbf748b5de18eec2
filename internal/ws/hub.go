// Package ws streams live pivot-by-pivot progress of a solve over a
// WebSocket connection, for callers that want to watch convergence
// rather than wait for the final result.
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"lpsimplex/internal/api"
	"lpsimplex/internal/middleware"
	"lpsimplex/internal/simplex"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // a solve request can carry a sizeable dense model
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// PivotEvent is one message pushed to the client per pivot.
type PivotEvent struct {
	Type       string  `json:"type"` // "pivot", "done" or "error"
	Iteration  int     `json:"iteration"`
	Value      float64 `json:"value,omitempty"`
	Code       string  `json:"code,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
}

// Handler upgrades a request to a WebSocket and streams one solve's
// progress over it.
type Handler struct {
	log *zap.Logger
}

// NewHandler builds a pivot-trace streaming handler.
func NewHandler(log *zap.Logger) *Handler {
	return &Handler{log: log}
}

// RegisterRoutes registers the live solve-trace endpoint.
func (h *Handler) RegisterRoutes(router *gin.Engine, authMiddleware *middleware.Middleware) {
	group := router.Group("/api/v1/solve")
	group.Use(authMiddleware.AuthMiddleware())
	group.GET("/stream", h.Stream)
}

// Stream accepts one JSON-encoded api.SolveRequest as the first
// incoming WebSocket message, then streams a PivotEvent per pivot
// followed by a terminal "done" event carrying the final result.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	_, raw, err := conn.ReadMessage()
	if err != nil {
		return
	}

	var req api.SolveRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.writeJSON(conn, PivotEvent{Type: "error", Code: "invalid request"})
		return
	}

	send := make(chan PivotEvent, 64)
	done := make(chan struct{})
	go h.pump(conn, send, done)

	m := req.Model.ToModel()
	opts := req.ToOptions()
	opts.Trace = func(iteration int, value float64) {
		select {
		case send <- PivotEvent{Type: "pivot", Iteration: iteration, Value: value}:
		default:
			// backlog full: drop this tick, the client will still get
			// the terminal "done" event with the final result.
		}
	}

	result := simplex.SolveModel(m, opts)
	send <- PivotEvent{
		Type: "done", Iteration: result.Iterations, Value: result.Value,
		Code: result.Code.String(), Iterations: result.Iterations,
	}
	close(send)
	<-done
}

func (h *Handler) pump(conn *websocket.Conn, send <-chan PivotEvent, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-send:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := h.writeJSON(conn, event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeJSON(conn *websocket.Conn, event PivotEvent) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(event)
}
