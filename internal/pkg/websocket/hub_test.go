package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, hub *Hub, userID uuid.UUID) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(hub, nil, zerolog.Nop())
	r.GET("/ws", func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		h.HandleConnection(c)
	})
	r.GET("/anon", h.HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestNotificationReachesRecipient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	recipient := uuid.New()
	url := startServer(t, hub, recipient)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(recipient) == 1 }, time.Second, 10*time.Millisecond)

	now := time.Now().UTC()
	comm := &models.Communication{ID: uuid.New(), SenderID: uuid.New(), Subject: "Welcome", SentAt: &now, RecipientIDs: []uuid.UUID{recipient}}
	NewCommunicationNotifier(hub).CommunicationSent(comm)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var n struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &n))
	assert.Equal(t, TypeCommunicationSent, n.Type)
	assert.Equal(t, comm.ID.String(), n.Data["id"])
	assert.Equal(t, "Welcome", n.Data["subject"])
}

func TestClientUnregistersOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	user := uuid.New()
	url := startServer(t, hub, user)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount(user) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount(user) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandlerRequiresUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	url := startServer(t, hub, uuid.New())

	_, resp, err := websocket.DefaultDialer.Dial(url+"/anon", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotifyAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Notify([]uuid.UUID{uuid.New()}, Notification{Type: "x"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked after hub stopped")
	}
}
