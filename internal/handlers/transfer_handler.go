package handlers

import (
	"lanshare/internal/models"
	"lanshare/internal/requests"
	"lanshare/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
)

// TransferHandler handles transfer-related HTTP requests
type TransferHandler struct {
	store *storage.Store
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(store *storage.Store) *TransferHandler {
	return &TransferHandler{store: store}
}

// ListTransfers returns all transfers, newest first
func (h *TransferHandler) ListTransfers(c *fiber.Ctx) error {
	transfers, err := h.store.Transfers()
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch transfers", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Transfers retrieved successfully", transfers)
	return httpx.SendResponse(c, response)
}

// ListActiveTransfers returns transfers that are pending or active
func (h *TransferHandler) ListActiveTransfers(c *fiber.Ctx) error {
	transfers, err := h.store.ActiveTransfers()
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch active transfers", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Active transfers retrieved successfully", transfers)
	return httpx.SendResponse(c, response)
}

// CreateTransfer initiates a new transfer
func (h *TransferHandler) CreateTransfer(c *fiber.Ctx) error {
	var input requests.CreateTransferRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}

	// Validate request
	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	transfer := models.Transfer{
		FileID:     input.FileID,
		FromDevice: input.FromDevice,
		ToDevice:   input.ToDevice,
		Status:     input.Status,
	}
	if input.Progress != nil {
		transfer.Progress = *input.Progress
	}

	if err := h.store.CreateTransfer(&transfer); err != nil {
		response := httpx.InternalServerError("Failed to create transfer", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.Created("Transfer created successfully", transfer)
	return httpx.SendResponse(c, response)
}
