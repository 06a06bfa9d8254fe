package models

import "time"

// Message is a text message sent between devices. Messages are immutable
// once created.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Content    string    `json:"content" gorm:"not null"`
	FromDevice *uint     `json:"fromDevice" gorm:"index"`
	SentAt     time.Time `json:"sentAt" gorm:"autoCreateTime"`
}
