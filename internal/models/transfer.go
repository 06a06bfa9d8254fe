package models

import "time"

// Transfer status values
const (
	TransferStatusPending   = "pending"
	TransferStatusActive    = "active"
	TransferStatusCompleted = "completed"
	TransferStatusFailed    = "failed"
)

// Transfer tracks a file transfer between two devices
type Transfer struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	FileID      uint       `json:"fileId" gorm:"not null;index"`
	FromDevice  *uint      `json:"fromDevice" gorm:"index"`
	ToDevice    *uint      `json:"toDevice" gorm:"index"`
	Status      string     `json:"status" gorm:"not null;default:'pending'"`
	Progress    int        `json:"progress" gorm:"not null;default:0"`
	StartedAt   time.Time  `json:"startedAt" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completedAt"`
}
