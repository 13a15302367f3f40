package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/pkg/ctxutil"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.Hub

	mu      sync.Mutex
	clients map[uuid.UUID]*realtime.Client // keyed by session id
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{
		log:     log.With("handler", "RealtimeHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]*realtime.Client),
	}
}

func (h *RealtimeHandler) Stream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if rd.SessionID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session id"})
		return
	}

	h.mu.Lock()
	// One stream per session; a reconnect replaces the old client.
	if existing, ok := h.clients[rd.SessionID]; ok {
		h.hub.CloseClient(existing)
		delete(h.clients, rd.SessionID)
	}
	client := h.hub.NewClient(rd.UserID)
	h.clients[rd.SessionID] = client
	h.mu.Unlock()

	h.hub.AddChannel(client, rd.UserID.String())
	h.log.Info("realtime stream open", "user_id", rd.UserID, "session_id", rd.SessionID)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.mu.Lock()
	delete(h.clients, rd.SessionID)
	h.mu.Unlock()
	h.hub.CloseClient(client)
}
