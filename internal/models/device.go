package models

import "time"

// Device type values. Anything else is normalized to DeviceTypeOther.
const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeLaptop  = "laptop"
	DeviceTypeOther   = "other"
)

// Device represents a registered device on the local network
type Device struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Type        string    `json:"type" gorm:"not null"`
	IPAddress   string    `json:"ipAddress" gorm:"not null"`
	IsConnected bool      `json:"isConnected" gorm:"not null;default:false"`
	LastSeen    time.Time `json:"lastSeen" gorm:"not null"`
}

// NormalizeDeviceType maps unknown device types to the "other" fallback
func NormalizeDeviceType(t string) string {
	switch t {
	case DeviceTypeMobile, DeviceTypeTablet, DeviceTypeDesktop, DeviceTypeLaptop:
		return t
	default:
		return DeviceTypeOther
	}
}
