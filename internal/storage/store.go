package storage

import (
	"time"

	"lanshare/internal/models"

	"gorm.io/gorm"
)

// Store provides CRUD access to the four entity kinds. Every operation is
// atomic with respect to a single row; lookups by unknown id return
// gorm.ErrRecordNotFound so callers can distinguish "no rows" from "this
// row doesn't exist".
type Store struct {
	db *gorm.DB
}

// New creates a store backed by the given database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Devices returns all registered devices in registration order
func (s *Store) Devices() ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.Order("id ASC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// Device returns a single device by id
func (s *Store) Device(id uint) (*models.Device, error) {
	var device models.Device
	if err := s.db.First(&device, id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevice registers a new device. Unknown device types are normalized
// to the "other" fallback and the last-seen timestamp is stamped.
func (s *Store) CreateDevice(device *models.Device) error {
	device.Type = models.NormalizeDeviceType(device.Type)
	device.LastSeen = time.Now().UTC()
	return s.db.Create(device).Error
}

// SetDeviceConnected flips the connected flag and refreshes last-seen
func (s *Store) SetDeviceConnected(id uint, connected bool) (*models.Device, error) {
	result := s.db.Model(&models.Device{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_connected": connected,
		"last_seen":    time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.Device(id)
}

// Files returns all file records, newest first
func (s *Store) Files() ([]models.File, error) {
	var files []models.File
	if err := s.db.Order("id DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// File returns a single file record by id
func (s *Store) File(id uint) (*models.File, error) {
	var file models.File
	if err := s.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// CreateFile inserts a file metadata record
func (s *Store) CreateFile(file *models.File) error {
	return s.db.Create(file).Error
}

// DeleteFile removes a file metadata record
func (s *Store) DeleteFile(id uint) error {
	result := s.db.Delete(&models.File{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Transfers returns all transfers, newest first
func (s *Store) Transfers() ([]models.Transfer, error) {
	var transfers []models.Transfer
	if err := s.db.Order("id DESC").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// ActiveTransfers returns transfers whose status is pending or active
func (s *Store) ActiveTransfers() ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := s.db.
		Where("status IN ?", []string{models.TransferStatusPending, models.TransferStatusActive}).
		Order("id DESC").
		Find(&transfers).Error
	if err != nil {
		return nil, err
	}
	return transfers, nil
}

// Transfer returns a single transfer by id
func (s *Store) Transfer(id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := s.db.First(&transfer, id).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

// CreateTransfer inserts a transfer record
func (s *Store) CreateTransfer(transfer *models.Transfer) error {
	if transfer.Status == "" {
		transfer.Status = models.TransferStatusPending
	}
	return s.db.Create(transfer).Error
}

// UpdateTransferProgress updates a transfer's progress percentage. Reaching
// 100% forces the status to completed and stamps the completion time.
func (s *Store) UpdateTransferProgress(id uint, progress int) (*models.Transfer, error) {
	updates := map[string]interface{}{"progress": progress}
	if progress == 100 {
		updates["status"] = models.TransferStatusCompleted
		updates["completed_at"] = time.Now().UTC()
	}
	result := s.db.Model(&models.Transfer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.Transfer(id)
}

// UpdateTransferStatus sets a transfer's status, stamping the completion
// time when the transfer completes
func (s *Store) UpdateTransferStatus(id uint, status string) (*models.Transfer, error) {
	updates := map[string]interface{}{"status": status}
	if status == models.TransferStatusCompleted {
		updates["completed_at"] = time.Now().UTC()
	}
	result := s.db.Model(&models.Transfer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.Transfer(id)
}

// Messages returns all messages in chronological order
func (s *Store) Messages() ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage inserts a message record
func (s *Store) CreateMessage(message *models.Message) error {
	return s.db.Create(message).Error
}
