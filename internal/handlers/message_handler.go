package handlers

import (
	"lanshare/internal/models"
	"lanshare/internal/requests"
	"lanshare/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
)

// MessageHandler handles message-related HTTP requests
type MessageHandler struct {
	store *storage.Store
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(store *storage.Store) *MessageHandler {
	return &MessageHandler{store: store}
}

// ListMessages returns all messages in chronological order
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	messages, err := h.store.Messages()
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch messages", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Messages retrieved successfully", messages)
	return httpx.SendResponse(c, response)
}

// CreateMessage stores a new message
func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	var input requests.CreateMessageRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}

	// Validate request
	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	message := models.Message{
		Content:    input.Content,
		FromDevice: input.FromDevice,
	}

	if err := h.store.CreateMessage(&message); err != nil {
		response := httpx.InternalServerError("Failed to send message", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.Created("Message sent successfully", message)
	return httpx.SendResponse(c, response)
}
