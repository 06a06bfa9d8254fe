package handlers

import (
	"lanshare/internal/models"
	"lanshare/internal/requests"
	"lanshare/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
)

// DeviceHandler handles device-related HTTP requests
type DeviceHandler struct {
	store *storage.Store
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(store *storage.Store) *DeviceHandler {
	return &DeviceHandler{store: store}
}

// ListDevices returns all registered devices
func (h *DeviceHandler) ListDevices(c *fiber.Ctx) error {
	devices, err := h.store.Devices()
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch devices", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Devices retrieved successfully", devices)
	return httpx.SendResponse(c, response)
}

// CreateDevice registers a new device
func (h *DeviceHandler) CreateDevice(c *fiber.Ctx) error {
	var input requests.CreateDeviceRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}

	// Validate request
	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	device := models.Device{
		Name:      input.Name,
		Type:      input.Type,
		IPAddress: input.IPAddress,
	}
	if input.IsConnected != nil {
		device.IsConnected = *input.IsConnected
	}

	if err := h.store.CreateDevice(&device); err != nil {
		response := httpx.InternalServerError("Failed to register device", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.Created("Device registered successfully", device)
	return httpx.SendResponse(c, response)
}
