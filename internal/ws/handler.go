package ws

import (
	"encoding/json"
	"log"

	"lanshare/internal/models"
	"lanshare/internal/requests"
	"lanshare/internal/storage"

	"github.com/gofiber/contrib/websocket"
	"github.com/kerimovok/go-pkg-utils/validator"
	"gorm.io/gorm"
)

// Handler processes WebSocket messages. Errors in individual messages are
// answered with an error frame and never terminate the connection; the
// disconnect sequence runs on connection close regardless of cause.
type Handler struct {
	hub   *Hub
	store *storage.Store
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, store *storage.Store) *Handler {
	return &Handler{hub: hub, store: store}
}

// Handle runs the read loop for one connection
func (h *Handler) Handle(c *websocket.Conn) {
	h.hub.Register(c)
	defer h.handleClose(c)

	// Handshake ack
	h.hub.Send(c, Event{Type: EventConnected})

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		h.handleMessage(c, data)
	}
}

// handleMessage dispatches a single inbound frame by its kind. Unknown
// kinds are rejected explicitly.
func (h *Handler) handleMessage(conn Conn, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.hub.Send(conn, ErrorEvent("Invalid message format"))
		return
	}

	switch msg.Type {
	case MessageDeviceConnect:
		h.handleDeviceConnect(conn, msg.Data)
	case MessageSendMessage:
		h.handleSendMessage(conn, msg.Data)
	case MessageTransferProgress:
		h.handleTransferProgress(conn, msg.Data)
	default:
		h.hub.Send(conn, ErrorEvent("Unknown message type: "+msg.Type))
	}
}

// handleClose runs the disconnect sequence for a closing connection: mark
// the associated device disconnected, broadcast it, drop the association.
// Unidentified connections produce no device side effects.
func (h *Handler) handleClose(conn Conn) {
	device := h.hub.Unregister(conn)
	_ = conn.Close()
	if device != nil {
		h.disconnectDevice(device)
	}
}

func (h *Handler) handleDeviceConnect(conn Conn, data json.RawMessage) {
	var input requests.CreateDeviceRequest
	if err := json.Unmarshal(data, &input); err != nil {
		h.hub.Send(conn, ErrorEvent("Invalid device payload"))
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		h.hub.Send(conn, ErrorEvent("Device validation failed: "+err.Error()))
		return
	}

	device := &models.Device{
		Name:        input.Name,
		Type:        input.Type,
		IPAddress:   input.IPAddress,
		IsConnected: true,
	}
	if err := h.store.CreateDevice(device); err != nil {
		log.Printf("Failed to register device over WebSocket: %v", err)
		h.hub.Send(conn, ErrorEvent("Failed to register device"))
		return
	}

	// A connection re-identifying as a new device disconnects the prior
	// association first
	if prior := h.hub.Identify(conn, device); prior != nil {
		h.disconnectDevice(prior)
	}

	h.hub.Broadcast(Event{Type: EventDeviceConnected, Data: device})
}

func (h *Handler) handleSendMessage(conn Conn, data json.RawMessage) {
	var input requests.CreateMessageRequest
	if err := json.Unmarshal(data, &input); err != nil {
		h.hub.Send(conn, ErrorEvent("Invalid message payload"))
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		h.hub.Send(conn, ErrorEvent("Message validation failed: "+err.Error()))
		return
	}

	message := &models.Message{
		Content:    input.Content,
		FromDevice: input.FromDevice,
	}
	if err := h.store.CreateMessage(message); err != nil {
		log.Printf("Failed to store message over WebSocket: %v", err)
		h.hub.Send(conn, ErrorEvent("Failed to send message"))
		return
	}

	h.hub.Broadcast(Event{Type: EventNewMessage, Data: message})
}

func (h *Handler) handleTransferProgress(conn Conn, data json.RawMessage) {
	var input requests.TransferProgressRequest
	if err := json.Unmarshal(data, &input); err != nil {
		h.hub.Send(conn, ErrorEvent("Invalid progress payload"))
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		h.hub.Send(conn, ErrorEvent("Progress validation failed: "+err.Error()))
		return
	}

	transfer, err := h.store.UpdateTransferProgress(input.TransferID, input.Progress)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			h.hub.Send(conn, ErrorEvent("Transfer not found"))
			return
		}
		log.Printf("Failed to update transfer progress: %v", err)
		h.hub.Send(conn, ErrorEvent("Failed to update transfer"))
		return
	}

	h.hub.Broadcast(Event{Type: EventTransferUpdated, Data: transfer})
}

// disconnectDevice marks a device disconnected and broadcasts the change
func (h *Handler) disconnectDevice(device *models.Device) {
	updated, err := h.store.SetDeviceConnected(device.ID, false)
	if err != nil {
		log.Printf("Failed to mark device %d disconnected: %v", device.ID, err)
		device.IsConnected = false
		h.hub.Broadcast(Event{Type: EventDeviceDisconnected, Data: device})
		return
	}
	h.hub.Broadcast(Event{Type: EventDeviceDisconnected, Data: updated})
}
