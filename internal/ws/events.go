package ws

import "encoding/json"

// Server→client event kinds
const (
	EventConnected          = "connected"
	EventDeviceConnected    = "device_connected"
	EventDeviceDisconnected = "device_disconnected"
	EventNewMessage         = "new_message"
	EventTransferUpdated    = "transfer_updated"
	EventError              = "error"
)

// Client→server message kinds
const (
	MessageDeviceConnect    = "device_connect"
	MessageSendMessage      = "send_message"
	MessageTransferProgress = "transfer_progress"
)

// Event is a server→client frame: a kind discriminator plus the entity or
// delta it carries
type Event struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ClientMessage is a client→server frame. The payload stays raw until the
// kind is known.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ErrorEvent builds an error frame for a single connection
func ErrorEvent(message string) Event {
	return Event{Type: EventError, Error: message}
}
