package game

// EventType names an outbound event. The values are the wire-level message
// names clients subscribe to.
type EventType string

const (
	EventJoinSuccess    EventType = "joinSuccess"
	EventGameState      EventType = "gameState"
	EventBettingTimer   EventType = "bettingTimer"
	EventNextRoundTimer EventType = "nextRoundTimer"
	EventFinalRanking   EventType = "finalRanking"
	EventGameOver       EventType = "gameOver"
	EventError          EventType = "error"
)

// Event is a single outbound event addressed to one participant.
type Event struct {
	Type EventType
	Data any
}

// Sender delivers events to participants. The messaging gateway implements
// it over WebSocket connections; tests use a recording fake. Send must not
// block: the game core runs under the room lock.
type Sender interface {
	Send(handle string, ev Event)
}

// TimerPayload announces a running countdown to the whole room.
type TimerPayload struct {
	DurationMS int `json:"durationMs"`
}

// GameOverPayload ends a room early, before the full round count.
type GameOverPayload struct {
	Message string `json:"message"`
}

// ErrorPayload reports a rejected action to the participant that issued it.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Standing is one row of the final ranking.
type Standing struct {
	Name  string `json:"name"`
	Chips int    `json:"chips"`
}

// FinalRankingPayload carries the standings broadcast after the last round,
// sorted by chips descending.
type FinalRankingPayload struct {
	Ranking []Standing `json:"ranking"`
}
