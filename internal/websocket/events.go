package websocket

import (
	"log"

	"github.com/event-timekeeper/backend/internal/storage/models"
)

// EventBroadcaster handles broadcasting WebSocket events. It is the typed
// notification surface the rest of the application uses; nothing outside
// this package builds raw messages.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastCountdownTick sends the per-second display snapshot.
func (b *EventBroadcaster) BroadcastCountdownTick(snapshot any) {
	b.broadcast(NewMessage(TypeCountdownTick, snapshot))
}

// BroadcastSettingsChanged announces newly applied time settings.
func (b *EventBroadcaster) BroadcastSettingsChanged(settings models.TimeSettings, source string) {
	payload := SettingsChangedPayload{
		OpenTime:  settings.OpenTime,
		StartTime: settings.StartTime,
		EndTime:   settings.EndTime,
		Source:    source,
	}
	b.broadcast(NewMessage(TypeSettingsChanged, payload))
}

// BroadcastSettingsCleared announces that settings were reset.
func (b *EventBroadcaster) BroadcastSettingsCleared() {
	b.broadcast(NewMessage(TypeSettingsCleared, struct{}{}))
}

// BroadcastCatalogReloaded announces a refreshed catalog cache.
func (b *EventBroadcaster) BroadcastCatalogReloaded(rows int) {
	b.broadcast(NewMessage(TypeCatalogReloaded, CatalogReloadedPayload{Rows: rows}))
}

// BroadcastTitleChanged announces a new display title.
func (b *EventBroadcaster) BroadcastTitleChanged(title string) {
	b.broadcast(NewMessage(TypeTitleChanged, TitleChangedPayload{Title: title}))
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, message string) {
	payload := NotificationPayload{
		Level:   level,
		Message: message,
	}
	b.broadcast(NewMessage(TypeNotification, payload))
}

// broadcast sends a message to all connected clients.
func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
