package requests

// CreateTransferRequest represents a transfer creation request
type CreateTransferRequest struct {
	FileID     uint   `json:"fileId" validate:"required"`
	FromDevice *uint  `json:"fromDevice,omitempty"`
	ToDevice   *uint  `json:"toDevice,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=pending active completed failed"`
	Progress   *int   `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
}

// TransferProgressRequest represents a transfer progress update
type TransferProgressRequest struct {
	TransferID uint `json:"transferId" validate:"required"`
	Progress   int  `json:"progress" validate:"min=0,max=100"`
}
