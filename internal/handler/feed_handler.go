package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"candidature-api/internal/metrics"
	"candidature-api/internal/realtime"
	"candidature-api/internal/response"
	"candidature-api/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// FeedHandler streams submission events of one candidature over a websocket.
type FeedHandler struct {
	hub                realtime.Hub
	candidatureService service.CandidatureService
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

func NewFeedHandler(hub realtime.Hub, candidatureService service.CandidatureService, m *metrics.Metrics, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		hub:                hub,
		candidatureService: candidatureService,
		metrics:            m,
		logger:             logger,
	}
}

// Subscribe godoc
// @Summary      Live submission feed
// @Description  Websocket. Every message is a submission.created event. Browsers pass the token as ?token=.
// @Tags         candidatures
// @Param        id path string true "Candidature ID (UUID)"
// @Param        token query string false "JWT for clients that cannot set headers"
// @Success      101 {string} string "Switching Protocols"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /candidatures/{id}/feed [get]
func (h *FeedHandler) Subscribe(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "candidature ID")
	if !ok {
		return
	}

	if _, err := h.candidatureService.GetCandidature(c.Request.Context(), sess, id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := h.hub.Subscribe(ctx, id.String())
	if err != nil {
		h.logger.Error("Failed to subscribe to submission feed", zap.String("candidature_id", id.String()), zap.Error(err))
		response.SendError(c, http.StatusServiceUnavailable, response.ErrCodeInternal, "Live feed unavailable")
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	if h.metrics != nil {
		h.metrics.FeedConnected()
		defer h.metrics.FeedDisconnected()
	}
	h.logger.Info("Feed connected",
		zap.String("candidature_id", id.String()),
		zap.String("user_id", sess.UserID.String()))

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, sub, done)

	h.logger.Info("Feed disconnected",
		zap.String("candidature_id", id.String()),
		zap.String("user_id", sess.UserID.String()))
}

// readPump discards client messages and closes done when the peer goes away.
func (h *FeedHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Feed read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *FeedHandler) writePump(conn *websocket.Conn, sub realtime.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.Messages():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
