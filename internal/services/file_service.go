package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"lanshare/internal/config"
	"lanshare/internal/utils"

	"github.com/google/uuid"
	"github.com/kerimovok/go-pkg-utils/errors"
)

// FileService handles the byte-content side of the file lifecycle: naming,
// persistence to the upload directory, and removal. Metadata rows are the
// store's concern; a row must only be created after SaveFile succeeded.
type FileService struct {
	config config.StorageConfig
}

// NewFileService creates a new file service instance
func NewFileService() *FileService {
	return &FileService{
		config: config.GetConfig().Storage,
	}
}

// ValidateUpload validates the uploaded file before any bytes are persisted
func (s *FileService) ValidateUpload(file *multipart.FileHeader) error {
	maxSize := s.config.MaxUploadBytes()
	if file.Size > maxSize {
		return errors.BadRequestError("FILE_TOO_LARGE", fmt.Sprintf("File size exceeds maximum allowed size of %d bytes", maxSize))
	}
	if file.Filename == "" {
		return errors.BadRequestError("INVALID_FILE", "File must have a name")
	}
	return nil
}

// GenerateStoredName generates a collision-free, filesystem-safe storage
// name. The user-supplied name never reaches the filesystem; only its
// extension is preserved.
func (s *FileService) GenerateStoredName(originalName string) string {
	name := uuid.NewString()
	if ext := utils.GetFileExtension(originalName); ext != "" {
		name += "." + ext
	}
	return name
}

// FilePath returns the on-disk path for a stored name
func (s *FileService) FilePath(storedName string) string {
	return filepath.Join(s.config.UploadDir, storedName)
}

// SaveFile writes the uploaded bytes to the upload directory
func (s *FileService) SaveFile(file *multipart.FileHeader, storedName string) error {
	if err := os.MkdirAll(s.config.UploadDir, 0755); err != nil {
		return errors.InternalError("DIR_CREATION_ERROR", fmt.Sprintf("Failed to create upload directory: %v", err))
	}

	dst, err := os.Create(s.FilePath(storedName))
	if err != nil {
		return errors.InternalError("FILE_CREATION_ERROR", fmt.Sprintf("Failed to create destination file: %v", err))
	}
	defer dst.Close()

	src, err := file.Open()
	if err != nil {
		return errors.InternalError("FILE_OPEN_ERROR", fmt.Sprintf("Failed to open source file: %v", err))
	}
	defer src.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return errors.InternalError("FILE_COPY_ERROR", fmt.Sprintf("Failed to copy file content: %v", err))
	}

	return nil
}

// Exists reports whether the bytes for a stored name are present on disk
func (s *FileService) Exists(storedName string) bool {
	_, err := os.Stat(s.FilePath(storedName))
	return err == nil
}

// RemoveFile deletes the bytes for a stored name. The caller decides how to
// treat missing bytes (drift), so os.IsNotExist errors pass through.
func (s *FileService) RemoveFile(storedName string) error {
	return os.Remove(s.FilePath(storedName))
}
