// Package chat relays room chat between players over WebSockets. Rooms are
// keyed by game id; the hub only fans messages out, it holds no game state.
package chat

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Hub owns every chat connection and fans broadcasts out per room.
type Hub struct {
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub builds a hub. Call Run before serving.
func NewHub(logger *log.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The session cookie guards the endpoint; any origin may
				// open the socket.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("chat"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run processes connection registration until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			total := len(h.connections)
			h.mu.Unlock()
			h.logger.Info("client connected", "total", total)

		case conn := <-h.unregister:
			h.mu.Lock()
			_, ok := h.connections[conn]
			if ok {
				delete(h.connections, conn)
			}
			total := len(h.connections)
			h.mu.Unlock()

			if ok {
				gameID, username := conn.Room()
				_ = conn.Close()
				if gameID != "" {
					h.notifyRoom(gameID, username+" left the room")
				}
			}
			h.logger.Info("client disconnected", "total", total)

		case <-h.ctx.Done():
			return
		}
	}
}

// Stop closes every connection and ends Run.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	for conn := range h.connections {
		_ = conn.Close()
	}
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and hands the socket to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newConnection(conn, h, h.logger)
	h.register <- client
	client.start()

	go func() {
		<-client.ctx.Done()
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
		}
	}()
}

// BroadcastToRoom sends a message to every connection in the room.
func (h *Hub) BroadcastToRoom(gameID string, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for conn := range h.connections {
		room, _ := conn.Room()
		if room != gameID {
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			h.logger.Error("failed to send message", "error", err)
		} else {
			count++
		}
	}

	h.logger.Debug("broadcast", "gameId", gameID, "type", msg.Type, "recipients", count)
}

// RoomMembers returns the usernames present in a room.
func (h *Hub) RoomMembers(gameID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var members []string
	for conn := range h.connections {
		room, username := conn.Room()
		if room == gameID && username != "" {
			members = append(members, username)
		}
	}
	return members
}

func (h *Hub) notifyRoom(gameID, text string) {
	msg, err := NewMessage(MessageTypeSystem, SystemData{GameID: gameID, Text: text})
	if err != nil {
		h.logger.Error("failed to build system message", "error", err)
		return
	}
	h.BroadcastToRoom(gameID, msg)
}
