package chat

import (
	"encoding/json"
	"time"
)

// MessageType identifies a chat envelope.
type MessageType string

const (
	// Client -> server
	MessageTypeJoin MessageType = "join"
	MessageTypeChat MessageType = "chat"

	// Server -> client
	MessageTypeSystem MessageType = "system"
	MessageTypeError  MessageType = "error"
)

// Message is the WebSocket envelope. Data carries the type-specific payload.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope stamped with the current time.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// JoinData puts the sender in a game room. Rooms are keyed by game id and
// created on first join.
type JoinData struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

// ChatData is one chat line. The server fills GameID and Username from the
// connection; values sent by the client are ignored.
type ChatData struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// SystemData is a server-generated room notice.
type SystemData struct {
	GameID string `json:"gameId"`
	Text   string `json:"text"`
}

// ErrorData reports a rejected client message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
