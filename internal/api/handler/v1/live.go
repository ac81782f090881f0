package v1

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ubuntu-fest/leaderboard-api/internal/api/handler/v1/response"
	"github.com/ubuntu-fest/leaderboard-api/internal/domain"
)

type LeaderboardSource interface {
	Leaderboard() []domain.College
}

type Broadcaster interface {
	Broadcast(message []byte)
	Serve(conn *websocket.Conn, initial []byte)
}

type liveMessage struct {
	Type        string                      `json:"type"`
	SentAt      time.Time                   `json:"sent_at"`
	Leaderboard []response.LeaderboardEntry `json:"leaderboard"`
}

type LiveHandler struct {
	svc      LeaderboardSource
	hub      Broadcaster
	upgrader websocket.Upgrader
}

// NewLiveHandler accepts upgrades from allowedOrigins, or from any origin
// when the list is empty.
func NewLiveHandler(svc LeaderboardSource, hub Broadcaster, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowedOrigins) == 0 || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *LiveHandler) snapshot() ([]byte, error) {
	return json.Marshal(liveMessage{
		Type:        "leaderboard",
		SentAt:      time.Now().UTC(),
		Leaderboard: response.Leaderboard(h.svc.Leaderboard()),
	})
}

// Publish pushes the current leaderboard to every live client.
func (h *LiveHandler) Publish() {
	msg, err := h.snapshot()
	if err != nil {
		zap.L().Error("live: encode snapshot", zap.Error(err))
		return
	}
	h.hub.Broadcast(msg)
}

// HandleLive godoc
// @Summary      Live leaderboard feed
// @Description  Upgrades to a websocket that receives a leaderboard snapshot on connect and after every change. Pass the JWT as the token query parameter.
// @Tags         leaderboard
// @Param        token  query  string  true  "JWT"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  response.Err
// @Router       /live [get]
func (h *LiveHandler) HandleLive(ctx *gin.Context) {
	initial, err := h.snapshot()
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("live: upgrade failed", zap.Error(err))
		return
	}

	h.hub.Serve(conn, initial)
}
