package server

import (
	"encoding/json"
	"time"

	"github.com/cardroom/blackjack/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
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

// fromEvent converts an outbound game event into a wire message. Event types
// and message types share their wire names.
func fromEvent(ev game.Event) (*Message, error) {
	return NewMessage(MessageType(ev.Type), ev.Data)
}

// Client → Server Messages

type CreateRoomData struct {
	Name string `json:"name"`
}

type JoinRoomData struct {
	Name   string `json:"name"`
	RoomID string `json:"roomId"`
}

type PlaceBetData struct {
	Amount int `json:"amount"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
