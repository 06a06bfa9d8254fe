package models

import "time"

// File represents an uploaded file's metadata. The bytes themselves live in
// the upload directory under Filename; OriginalName is only used for display
// and download headers.
type File struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Filename     string    `json:"filename" gorm:"not null;uniqueIndex"`
	OriginalName string    `json:"originalName" gorm:"not null"`
	Size         int64     `json:"size" gorm:"not null"`
	MimeType     string    `json:"mimeType" gorm:"not null"`
	UploadedAt   time.Time `json:"uploadedAt" gorm:"autoCreateTime"`
	UploadedBy   *uint     `json:"uploadedBy" gorm:"index"`
}
