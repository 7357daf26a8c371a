package websocket

import (
	"github.com/mindforge/mindforge-api/internal/app/models"
)

// CommunicationNotifier pushes communication events through the hub
type CommunicationNotifier struct {
	hub *Hub
}

// NewCommunicationNotifier creates a notifier backed by hub
func NewCommunicationNotifier(hub *Hub) *CommunicationNotifier {
	return &CommunicationNotifier{hub: hub}
}

// CommunicationSent tells every connected recipient that comm was sent
func (n *CommunicationNotifier) CommunicationSent(comm *models.Communication) {
	n.hub.Notify(comm.RecipientIDs, Notification{
		Type: TypeCommunicationSent,
		Data: map[string]interface{}{
			"id":       comm.ID,
			"senderId": comm.SenderID,
			"subject":  comm.Subject,
			"type":     comm.Type,
			"sentAt":   comm.SentAt,
		},
	})
}
