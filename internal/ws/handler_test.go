package ws

import (
	"encoding/json"
	"testing"

	"lanshare/internal/models"
	"lanshare/internal/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Device{}, &models.File{}, &models.Transfer{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return storage.New(db)
}

func newTestHandler(t *testing.T) (*Handler, *Hub, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	hub := NewHub()
	return NewHandler(hub, store), hub, store
}

func deviceConnectFrame(name string) []byte {
	return []byte(`{"type":"device_connect","data":{"name":"` + name + `","type":"mobile","ipAddress":"10.0.0.5"}}`)
}

func TestHandler_DeviceConnect(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	connA := &fakeConn{}
	connB := &fakeConn{}
	hub.Register(connA)
	hub.Register(connB)

	handler.handleMessage(connA, deviceConnectFrame("Phone"))

	devices, err := store.Devices()
	if err != nil {
		t.Fatalf("Devices() unexpected error: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("Devices() returned %d devices, want 1", len(devices))
	}
	if !devices[0].IsConnected {
		t.Error("device registered over WebSocket should be connected")
	}

	if got := hub.Device(connA); got == nil || got.ID != devices[0].ID {
		t.Errorf("hub association = %v, want device %d", got, devices[0].ID)
	}

	// Both connections see the device_connected broadcast
	for name, conn := range map[string]*fakeConn{"A": connA, "B": connB} {
		frames := conn.frames(t)
		if len(frames) != 1 {
			t.Fatalf("conn %s received %d frames, want 1", name, len(frames))
		}
		if frames[0].Type != EventDeviceConnected {
			t.Errorf("conn %s frame type = %q, want %q", name, frames[0].Type, EventDeviceConnected)
		}
		var device models.Device
		if err := json.Unmarshal(frames[0].Data, &device); err != nil {
			t.Fatalf("failed to decode device payload: %v", err)
		}
		if device.ID != devices[0].ID {
			t.Errorf("conn %s payload id = %d, want %d", name, device.ID, devices[0].ID)
		}
	}
}

func TestHandler_CloseDisconnectsDevice(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	connA := &fakeConn{}
	connB := &fakeConn{}
	hub.Register(connA)
	hub.Register(connB)

	handler.handleMessage(connA, deviceConnectFrame("Phone"))
	deviceID := hub.Device(connA).ID

	handler.handleClose(connA)

	if !connA.closed {
		t.Error("closed connection should have Close() called")
	}
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	// The surviving connection gets device_disconnected with the device id
	frames := connB.frames(t)
	last := frames[len(frames)-1]
	if last.Type != EventDeviceDisconnected {
		t.Fatalf("last frame type = %q, want %q", last.Type, EventDeviceDisconnected)
	}
	var device models.Device
	if err := json.Unmarshal(last.Data, &device); err != nil {
		t.Fatalf("failed to decode device payload: %v", err)
	}
	if device.ID != deviceID {
		t.Errorf("device_disconnected id = %d, want %d", device.ID, deviceID)
	}
	if device.IsConnected {
		t.Error("device_disconnected payload should carry isConnected false")
	}

	// And the store agrees
	stored, err := store.Device(deviceID)
	if err != nil {
		t.Fatalf("Device() unexpected error: %v", err)
	}
	if stored.IsConnected {
		t.Error("device should be marked disconnected in the store")
	}
}

func TestHandler_CloseUnidentifiedConn(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	conn := &fakeConn{}
	observer := &fakeConn{}
	hub.Register(conn)
	hub.Register(observer)

	handler.handleClose(conn)

	if len(observer.frames(t)) != 0 {
		t.Error("closing an unidentified connection should not broadcast")
	}
	devices, err := store.Devices()
	if err != nil {
		t.Fatalf("Devices() unexpected error: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Devices() returned %d devices, want 0", len(devices))
	}
}

func TestHandler_Reidentify(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	conn := &fakeConn{}
	hub.Register(conn)

	handler.handleMessage(conn, deviceConnectFrame("Phone"))
	firstID := hub.Device(conn).ID

	handler.handleMessage(conn, deviceConnectFrame("Laptop"))
	secondID := hub.Device(conn).ID
	if secondID == firstID {
		t.Fatal("re-identification should associate a new device")
	}

	// The prior device is disconnected before the new one is announced
	frames := conn.frames(t)
	if len(frames) != 3 {
		t.Fatalf("received %d frames, want 3", len(frames))
	}
	if frames[1].Type != EventDeviceDisconnected {
		t.Errorf("frame[1] type = %q, want %q", frames[1].Type, EventDeviceDisconnected)
	}
	if frames[2].Type != EventDeviceConnected {
		t.Errorf("frame[2] type = %q, want %q", frames[2].Type, EventDeviceConnected)
	}

	first, err := store.Device(firstID)
	if err != nil {
		t.Fatalf("Device() unexpected error: %v", err)
	}
	if first.IsConnected {
		t.Error("prior device should be marked disconnected after re-identification")
	}
}

func TestHandler_SendMessage(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	conn := &fakeConn{}
	hub.Register(conn)

	handler.handleMessage(conn, []byte(`{"type":"send_message","data":{"content":"hello"}}`))

	messages, err := store.Messages()
	if err != nil {
		t.Fatalf("Messages() unexpected error: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hello" {
		t.Fatalf("Messages() = %v, want one message with content hello", messages)
	}

	frames := conn.frames(t)
	if len(frames) != 1 || frames[0].Type != EventNewMessage {
		t.Fatalf("frames = %v, want one new_message frame", frames)
	}
}

func TestHandler_TransferProgress(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	conn := &fakeConn{}
	hub.Register(conn)

	file := models.File{Filename: "a.stored", OriginalName: "a.txt", Size: 1, MimeType: "text/plain"}
	if err := store.CreateFile(&file); err != nil {
		t.Fatalf("CreateFile() unexpected error: %v", err)
	}
	transfer := models.Transfer{FileID: file.ID, Status: models.TransferStatusActive}
	if err := store.CreateTransfer(&transfer); err != nil {
		t.Fatalf("CreateTransfer() unexpected error: %v", err)
	}

	handler.handleMessage(conn, []byte(`{"type":"transfer_progress","data":{"transferId":1,"progress":100}}`))

	updated, err := store.Transfer(transfer.ID)
	if err != nil {
		t.Fatalf("Transfer() unexpected error: %v", err)
	}
	if updated.Status != models.TransferStatusCompleted {
		t.Errorf("transfer status = %q, want completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Error("transfer completedAt should be set")
	}

	frames := conn.frames(t)
	if len(frames) != 1 || frames[0].Type != EventTransferUpdated {
		t.Fatalf("frames = %v, want one transfer_updated frame", frames)
	}
	var payload models.Transfer
	if err := json.Unmarshal(frames[0].Data, &payload); err != nil {
		t.Fatalf("failed to decode transfer payload: %v", err)
	}
	if payload.Progress != 100 {
		t.Errorf("payload progress = %d, want 100", payload.Progress)
	}
}

func TestHandler_TransferProgressUnknownID(t *testing.T) {
	handler, hub, _ := newTestHandler(t)

	conn := &fakeConn{}
	hub.Register(conn)

	handler.handleMessage(conn, []byte(`{"type":"transfer_progress","data":{"transferId":77,"progress":10}}`))

	frames := conn.frames(t)
	if len(frames) != 1 || frames[0].Type != EventError {
		t.Fatalf("frames = %v, want one error frame", frames)
	}
}

func TestHandler_BadInput(t *testing.T) {
	handler, hub, store := newTestHandler(t)

	conn := &fakeConn{}
	observer := &fakeConn{}
	hub.Register(conn)
	hub.Register(observer)

	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed json", input: `{not json`},
		{name: "unknown kind", input: `{"type":"self_destruct","data":{}}`},
		{name: "invalid device payload", input: `{"type":"device_connect","data":{"name":""}}`},
		{name: "invalid message payload", input: `{"type":"send_message","data":{"content":""}}`},
		{name: "invalid progress payload", input: `{"type":"transfer_progress","data":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(conn.frames(t))
			handler.handleMessage(conn, []byte(tt.input))

			frames := conn.frames(t)
			if len(frames) != before+1 {
				t.Fatalf("received %d new frames, want 1", len(frames)-before)
			}
			if frames[len(frames)-1].Type != EventError {
				t.Errorf("frame type = %q, want %q", frames[len(frames)-1].Type, EventError)
			}
			// Bad input is answered on the offending connection only
			if len(observer.frames(t)) != 0 {
				t.Error("observer should not receive error frames")
			}
		})
	}

	// Nothing was persisted along the way
	devices, _ := store.Devices()
	messages, _ := store.Messages()
	if len(devices) != 0 || len(messages) != 0 {
		t.Errorf("bad input persisted rows: %d devices, %d messages", len(devices), len(messages))
	}
}
