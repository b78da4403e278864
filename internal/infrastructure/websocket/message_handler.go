package websocket

import (
	"context"
	"encoding/json"
	"time"

	"tripcollab/pkg/logger"
)

// Client-to-server event types.
const (
	EventPing        = "ping"
	EventJoinThread  = "join_thread"
	EventLeaveThread = "leave_thread"
	EventTyping      = "typing"
	EventMarkRead    = "mark_read"
)

// Server-to-client event types. Payloads are diffs, not full thread
// snapshots; clients apply them to local state.
const (
	EventPong         = "pong"
	EventError        = "error"
	EventMessageNew   = "message_new"
	EventOfferUpdated = "offer_updated"
	EventOrderUpdated = "order_updated"
	EventTypingUpdate = "typing_update"
	EventReadReceipt  = "read_receipt"
	EventPresence     = "presence"
)

type WSEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type joinThreadData struct {
	ThreadID string `json:"thread_id"`
}

type typingData struct {
	ThreadID string `json:"thread_id"`
	Typing   bool   `json:"typing"`
}

type markReadData struct {
	ThreadID  string `json:"thread_id"`
	MessageID string `json:"message_id"`
}

// TypingUpdateData is the broadcast payload for typing indicator changes.
type TypingUpdateData struct {
	ThreadID  string `json:"thread_id"`
	UserID    string `json:"user_id"`
	Typing    bool   `json:"typing"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// ReadReceiptData tells the sender their message was read.
type ReadReceiptData struct {
	ThreadID  string `json:"thread_id"`
	MessageID string `json:"message_id"`
	ReaderID  string `json:"reader_id"`
}

// PresenceData announces a participant going on or offline.
type PresenceData struct {
	UserID   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
	LastSeen string `json:"last_seen"`
}

// NewEvent builds a timestamped outbound event ready to send.
func NewEvent(eventType string, data interface{}) []byte {
	payload, err := json.Marshal(WSEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal websocket event %s: %v", eventType, err)
		return nil
	}
	return payload
}

// HandleClientMessage dispatches one inbound client frame.
func (m *Manager) HandleClientMessage(ctx context.Context, client *Client, raw []byte) {
	var event WSEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		m.sendError(client, "invalid message format")
		return
	}

	switch event.Type {
	case EventPing:
		client.trySend(NewEvent(EventPong, nil))

	case EventJoinThread:
		var data joinThreadData
		if !decodeData(event.Data, &data) || data.ThreadID == "" {
			m.sendError(client, "join_thread requires thread_id")
			return
		}
		m.JoinThread(data.ThreadID, client)

	case EventLeaveThread:
		var data joinThreadData
		if !decodeData(event.Data, &data) || data.ThreadID == "" {
			m.sendError(client, "leave_thread requires thread_id")
			return
		}
		m.LeaveThread(data.ThreadID, client)

	case EventTyping:
		var data typingData
		if !decodeData(event.Data, &data) || data.ThreadID == "" {
			m.sendError(client, "typing requires thread_id")
			return
		}
		if m.handler != nil {
			m.handler.OnTyping(ctx, data.ThreadID, client.UserID, data.Typing)
		}

	case EventMarkRead:
		var data markReadData
		if !decodeData(event.Data, &data) || data.ThreadID == "" || data.MessageID == "" {
			m.sendError(client, "mark_read requires thread_id and message_id")
			return
		}
		if m.handler != nil {
			m.handler.OnMarkRead(ctx, data.ThreadID, data.MessageID, client.UserID)
		}

	default:
		logger.Debug("Unknown websocket event %q from %s", event.Type, client.UserID)
		m.sendError(client, "unknown event type")
	}
}

func (m *Manager) sendError(client *Client, message string) {
	client.trySend(NewEvent(EventError, map[string]string{"message": message}))
}

// decodeData re-marshals the loosely typed event data into a concrete
// payload struct.
func decodeData(data interface{}, target interface{}) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}
