package routes

import (
	"time"

	"lanshare/internal/handlers"
	"lanshare/internal/storage"
	"lanshare/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

func SetupRoutes(app *fiber.App, store *storage.Store, hub *ws.Hub) {
	// Monitor route
	app.Get("/metrics", monitor.New())

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"service":   "lanshare",
			"timestamp": time.Now().UTC(),
		})
	})

	// API routes group
	api := app.Group("/api")

	// Device routes
	deviceHandler := handlers.NewDeviceHandler(store)
	devices := api.Group("/devices")
	devices.Get("/", deviceHandler.ListDevices)
	devices.Post("/", deviceHandler.CreateDevice)

	// File routes
	fileHandler := handlers.NewFileHandler(store)
	files := api.Group("/files")
	files.Post("/upload", fileHandler.UploadFile)
	files.Get("/", fileHandler.ListFiles)
	files.Get("/:id", fileHandler.GetFile)
	files.Get("/:id/download", fileHandler.DownloadFile)
	files.Delete("/:id", fileHandler.DeleteFile)

	// Transfer routes
	transferHandler := handlers.NewTransferHandler(store)
	transfers := api.Group("/transfers")
	transfers.Get("/", transferHandler.ListTransfers)
	transfers.Get("/active", transferHandler.ListActiveTransfers)
	transfers.Post("/", transferHandler.CreateTransfer)

	// Message routes
	messageHandler := handlers.NewMessageHandler(store)
	messages := api.Group("/messages")
	messages.Get("/", messageHandler.ListMessages)
	messages.Post("/", messageHandler.CreateMessage)

	// WebSocket live channel
	wsHandler := ws.NewHandler(hub, store)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(wsHandler.Handle))
}
