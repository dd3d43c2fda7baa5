package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one WebSocket client. A connection belongs to at most one
// room at a time; joining another room replaces the first.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	hub       *Hub
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	username  string
	gameID    string
}

func newConnection(conn *websocket.Conn, hub *Hub, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 64),
		hub:    hub,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down. Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for delivery. A full buffer closes the
// connection rather than blocking the broadcaster.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) setRoom(gameID, username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = gameID
	c.username = username
}

// Room returns the connection's current room and username.
func (c *Connection) Room() (gameID, username string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID, c.username
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse join data")
			return
		}
		c.handleJoin(data)

	case MessageTypeChat:
		var data ChatData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse chat data")
			return
		}
		c.handleChat(data)

	default:
		c.sendError("unknown_type", "unknown message type")
	}
}

func (c *Connection) handleJoin(data JoinData) {
	gameID := strings.TrimSpace(data.GameID)
	username := strings.TrimSpace(data.Username)
	if gameID == "" || username == "" {
		c.sendError("invalid_join", "gameId and username are required")
		return
	}

	prevRoom, prevName := c.Room()
	c.setRoom(gameID, username)
	if prevRoom != "" && prevRoom != gameID {
		c.hub.notifyRoom(prevRoom, prevName+" left the room")
	}
	c.hub.notifyRoom(gameID, username+" joined the room")
}

func (c *Connection) handleChat(data ChatData) {
	gameID, username := c.Room()
	if gameID == "" {
		c.sendError("not_joined", "join a room before chatting")
		return
	}
	text := strings.TrimSpace(data.Text)
	if text == "" {
		return
	}

	msg, err := NewMessage(MessageTypeChat, ChatData{
		GameID:   gameID,
		Username: username,
		Text:     text,
	})
	if err != nil {
		c.logger.Error("failed to build chat message", "error", err)
		return
	}
	c.hub.BroadcastToRoom(gameID, msg)
}

func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		return
	}
	_ = c.SendMessage(msg)
}
