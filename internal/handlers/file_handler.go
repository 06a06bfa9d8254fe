package handlers

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"lanshare/internal/models"
	"lanshare/internal/services"
	"lanshare/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"gorm.io/gorm"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	store       *storage.Store
	fileService *services.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(store *storage.Store) *FileHandler {
	return &FileHandler{
		store:       store,
		fileService: services.NewFileService(),
	}
}

// UploadFile handles file upload requests
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	// Parse multipart form
	file, err := c.FormFile("file")
	if err != nil {
		response := httpx.BadRequest("No file uploaded", err)
		return httpx.SendResponse(c, response)
	}

	// Optional uploader device id
	var uploadedBy *uint
	if deviceID := c.FormValue("deviceId"); deviceID != "" {
		id, err := strconv.ParseUint(deviceID, 10, 32)
		if err != nil {
			response := httpx.BadRequest("Invalid device ID", err)
			return httpx.SendResponse(c, response)
		}
		parsed := uint(id)
		uploadedBy = &parsed
	}

	// Validate file before persisting anything
	if err := h.fileService.ValidateUpload(file); err != nil {
		response := httpx.BadRequest("File validation failed", err)
		return httpx.SendResponse(c, response)
	}

	// Save bytes under a server-generated name; the metadata row is only
	// created once the bytes are on disk
	storedName := h.fileService.GenerateStoredName(file.Filename)
	if err := h.fileService.SaveFile(file, storedName); err != nil {
		log.Printf("Failed to save uploaded file: %v", err)
		response := httpx.InternalServerError("Failed to save file", err)
		return httpx.SendResponse(c, response)
	}

	fileRecord := models.File{
		Filename:     storedName,
		OriginalName: file.Filename,
		Size:         file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		UploadedBy:   uploadedBy,
	}

	if err := h.store.CreateFile(&fileRecord); err != nil {
		log.Printf("Failed to save file record: %v", err)
		// Don't leave orphaned bytes behind
		if removeErr := h.fileService.RemoveFile(storedName); removeErr != nil {
			log.Printf("Warning: failed to clean up %s after record failure: %v", storedName, removeErr)
		}
		response := httpx.InternalServerError("Failed to process file upload", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.Created("File uploaded successfully", fileRecord)
	return httpx.SendResponse(c, response)
}

// ListFiles returns all file records, newest first
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	files, err := h.store.Files()
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch files", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Files retrieved successfully", files)
	return httpx.SendResponse(c, response)
}

// GetFile retrieves file information
func (h *FileHandler) GetFile(c *fiber.Ctx) error {
	fileID, err := parseID(c)
	if err != nil {
		response := httpx.BadRequest("Invalid file ID", err)
		return httpx.SendResponse(c, response)
	}

	file, err := h.store.File(fileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response := httpx.NotFound("File not found")
			return httpx.SendResponse(c, response)
		}
		response := httpx.InternalServerError("Failed to fetch file", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("File retrieved successfully", file)
	return httpx.SendResponse(c, response)
}

// DownloadFile streams the file bytes back with the original filename and
// recorded MIME type
func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	fileID, err := parseID(c)
	if err != nil {
		response := httpx.BadRequest("Invalid file ID", err)
		return httpx.SendResponse(c, response)
	}

	file, err := h.store.File(fileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response := httpx.NotFound("File not found")
			return httpx.SendResponse(c, response)
		}
		response := httpx.InternalServerError("Failed to fetch file", err)
		return httpx.SendResponse(c, response)
	}

	// Metadata and bytes can drift apart; downloads surface that as 404
	content, err := os.Open(h.fileService.FilePath(file.Filename))
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: file %s has a record but no bytes on disk", file.Filename)
			response := httpx.NotFound("File not found on disk")
			return httpx.SendResponse(c, response)
		}
		response := httpx.InternalServerError("Failed to open file", err)
		return httpx.SendResponse(c, response)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	c.Set(fiber.HeaderContentType, file.MimeType)
	return c.SendStream(content, int(file.Size))
}

// DeleteFile removes a file's bytes and metadata
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	fileID, err := parseID(c)
	if err != nil {
		response := httpx.BadRequest("Invalid file ID", err)
		return httpx.SendResponse(c, response)
	}

	file, err := h.store.File(fileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response := httpx.NotFound("File not found")
			return httpx.SendResponse(c, response)
		}
		response := httpx.InternalServerError("Failed to fetch file", err)
		return httpx.SendResponse(c, response)
	}

	// Remove bytes first; the row only goes away once the bytes are gone.
	// Bytes already missing is drift, logged and treated as cleanup.
	if err := h.fileService.RemoveFile(file.Filename); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to delete file %s from disk: %v", file.Filename, err)
			response := httpx.InternalServerError("Failed to delete file", err)
			return httpx.SendResponse(c, response)
		}
		log.Printf("Warning: file %s was already missing from disk", file.Filename)
	}

	if err := h.store.DeleteFile(fileID); err != nil {
		response := httpx.InternalServerError("Failed to delete file record", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("File deleted successfully", fiber.Map{"success": true})
	return httpx.SendResponse(c, response)
}

// parseID extracts a positive integer id from the route
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id: %d", id)
	}
	return uint(id), nil
}
