package requests

// CreateMessageRequest represents a message send request
type CreateMessageRequest struct {
	Content    string `json:"content" validate:"required"`
	FromDevice *uint  `json:"fromDevice,omitempty"`
}
