package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeCountdownTick   MessageType = "countdown.tick"
	TypeSettingsChanged MessageType = "settings.changed"
	TypeSettingsCleared MessageType = "settings.cleared"
	TypeCatalogReloaded MessageType = "catalog.reloaded"
	TypeTitleChanged    MessageType = "title.changed"
	TypeNotification    MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// SettingsChangedPayload is the payload for settings.changed events.
type SettingsChangedPayload struct {
	OpenTime  *time.Time `json:"openTime"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Source    string     `json:"source"`
}

// CatalogReloadedPayload is the payload for catalog.reloaded events.
type CatalogReloadedPayload struct {
	Rows int `json:"rows"`
}

// TitleChangedPayload is the payload for title.changed events.
type TitleChangedPayload struct {
	Title string `json:"title"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level   string `json:"level"` // info, warning, error
	Message string `json:"message"`
}
