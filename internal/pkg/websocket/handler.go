package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// UserIDKey is the gin context key the auth middleware stores the caller's id under
const UserIDKey = "userID"

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		upgrader: newUpgrader(allowedOrigins),
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to real-time notifications
// @Description Upgrades the connection to a WebSocket. The server pushes a "communication.sent" event whenever a communication addressed to the caller is sent. Browsers may pass the JWT as the token query parameter.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param token query string false "JWT access token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.Envelope "Authentication required"
// @Router /notifications/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	value, exists := c.Get(UserIDKey)
	userID, ok := value.(uuid.UUID)
	if !exists || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(http.StatusUnauthorized, "Authentication required", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("userID", userID.String()).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 32),
		userID: userID,
		logger: h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", userID.String()).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
