package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants used on the client-server protocol.
const (
	// Client to server messages
	MessageTypeCreateRoom MessageType = "createRoom"
	MessageTypeJoinRoom   MessageType = "joinRoom"
	MessageTypeStartGame  MessageType = "startGame"
	MessageTypePlaceBet   MessageType = "placeBet"
	MessageTypeHit        MessageType = "hit"
	MessageTypeStand      MessageType = "stand"
	MessageTypeDoubleDown MessageType = "doubleDown"

	// Server to client messages
	MessageTypeJoinSuccess    MessageType = "joinSuccess"
	MessageTypeGameState      MessageType = "gameState"
	MessageTypeBettingTimer   MessageType = "bettingTimer"
	MessageTypeNextRoundTimer MessageType = "nextRoundTimer"
	MessageTypeFinalRanking   MessageType = "finalRanking"
	MessageTypeGameOver       MessageType = "gameOver"
	MessageTypeError          MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
