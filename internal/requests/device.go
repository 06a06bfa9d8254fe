package requests

// CreateDeviceRequest represents a device registration request
type CreateDeviceRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	IPAddress   string `json:"ipAddress" validate:"required"`
	IsConnected *bool  `json:"isConnected,omitempty"`
}
