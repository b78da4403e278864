package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tripcollab/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client represents one authenticated WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	// thread rooms this client has joined
	rooms  map[string]bool
	closed bool
	mutex  sync.Mutex
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		rooms:  make(map[string]bool),
	}
}

// trySend queues a message without blocking. It reports false when the
// client is shut down or its buffer is full.
func (c *Client) trySend(message []byte) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once. Frames still in flight on
// the connection's read pump go through trySend, which sees the closed flag
// under the same mutex instead of hitting a closed channel.
func (c *Client) shutdown() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Manager tracks connected clients and per-thread room membership.
type Manager struct {
	clients     map[string]*Client
	threadRooms map[string]map[string]*Client
	Register    chan *Client
	Unregister  chan *Client
	handler     EventHandler
	mutex       sync.RWMutex
}

// EventHandler receives client-initiated events that need domain logic. The
// messaging usecase implements it; the indirection keeps this package free
// of usecase imports.
type EventHandler interface {
	OnTyping(ctx context.Context, threadID, userID string, typing bool)
	OnMarkRead(ctx context.Context, threadID, messageID, userID string)
	OnPresence(ctx context.Context, userID string, online bool)
}

func NewManager() *Manager {
	return &Manager{
		clients:     make(map[string]*Client),
		threadRooms: make(map[string]map[string]*Client),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

func (m *Manager) SetEventHandler(h EventHandler) {
	m.handler = h
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				// A reconnect replaces the old connection for the user.
				if old, ok := m.clients[client.UserID]; ok {
					old.shutdown()
					m.removeFromRoomsLocked(old)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: %s", client.UserID)
				if m.handler != nil {
					m.handler.OnPresence(ctx, client.UserID, true)
				}

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					client.shutdown()
					m.removeFromRoomsLocked(client)
				}
				m.mutex.Unlock()
				logger.Info("WebSocket client unregistered: %s", client.UserID)
				if m.handler != nil {
					m.handler.OnPresence(ctx, client.UserID, false)
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) removeFromRoomsLocked(client *Client) {
	client.mutex.Lock()
	rooms := make([]string, 0, len(client.rooms))
	for id := range client.rooms {
		rooms = append(rooms, id)
	}
	client.mutex.Unlock()

	for _, threadID := range rooms {
		if room, ok := m.threadRooms[threadID]; ok {
			delete(room, client.UserID)
			if len(room) == 0 {
				delete(m.threadRooms, threadID)
			}
		}
	}
}

// JoinThread adds a client to a thread room.
func (m *Manager) JoinThread(threadID string, client *Client) {
	m.mutex.Lock()
	room, ok := m.threadRooms[threadID]
	if !ok {
		room = make(map[string]*Client)
		m.threadRooms[threadID] = room
	}
	room[client.UserID] = client
	m.mutex.Unlock()

	client.mutex.Lock()
	client.rooms[threadID] = true
	client.mutex.Unlock()
}

// LeaveThread removes a client from a thread room.
func (m *Manager) LeaveThread(threadID string, client *Client) {
	m.mutex.Lock()
	if room, ok := m.threadRooms[threadID]; ok {
		delete(room, client.UserID)
		if len(room) == 0 {
			delete(m.threadRooms, threadID)
		}
	}
	m.mutex.Unlock()

	client.mutex.Lock()
	delete(client.rooms, threadID)
	client.mutex.Unlock()
}

// SendToUser delivers a message to one user if connected.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok && !client.trySend(message) {
		logger.Warn("Dropping message to slow client %s", userID)
	}
}

// SendToThread delivers a message to every client joined to a thread room.
func (m *Manager) SendToThread(threadID string, message []byte) {
	m.broadcastToThread(threadID, "", message)
}

// BroadcastToThreadExcept delivers a message to a thread room, skipping one
// user (usually the sender, who already has the payload).
func (m *Manager) BroadcastToThreadExcept(threadID, exceptUserID string, message []byte) {
	m.broadcastToThread(threadID, exceptUserID, message)
}

func (m *Manager) broadcastToThread(threadID, exceptUserID string, message []byte) {
	m.mutex.RLock()
	room := m.threadRooms[threadID]
	clients := make([]*Client, 0, len(room))
	for userID, client := range room {
		if userID == exceptUserID {
			continue
		}
		clients = append(clients, client)
	}
	m.mutex.RUnlock()

	for _, client := range clients {
		if !client.trySend(message) {
			logger.Warn("Dropping thread message to slow client %s", client.UserID)
		}
	}
}

// IsOnline reports whether the user has an active connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// ReadPump reads messages from the connection until it drops.
func (c *Client) ReadPump(ctx context.Context, m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(8192)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}
		m.HandleClientMessage(ctx, c, message)
	}
}

// WritePump drains the send channel to the connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
