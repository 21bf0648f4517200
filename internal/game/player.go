package game

import "github.com/cardroom/blackjack/internal/deck"

// Status is a player's stage within the current round.
type Status int

const (
	StatusWaiting Status = iota
	StatusBetting
	StatusBetPlaced
	StatusPlaying
	StatusStand
	StatusBust
	StatusFolded
	StatusOut
)

// String returns the wire value of the status.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusBetting:
		return "betting"
	case StatusBetPlaced:
		return "betPlaced"
	case StatusPlaying:
		return "playing"
	case StatusStand:
		return "stand"
	case StatusBust:
		return "bust"
	case StatusFolded:
		return "folded"
	case StatusOut:
		return "out"
	default:
		return "unknown"
	}
}

// Result is the outcome of a player's round, empty until resolution except
// for an immediate blackjack on the deal.
type Result string

const (
	ResultNone      Result = ""
	ResultBlackjack Result = "blackjack"
	ResultWin       Result = "win"
	ResultLose      Result = "lose"
	ResultBust      Result = "bust"
	ResultPush      Result = "push"
)

// Player is the per-participant state inside a room. Chips persist across
// rounds; everything else resets when a new betting phase begins.
type Player struct {
	Handle string
	Name   string
	Chips  int
	Hand   []deck.Card
	Score  int
	Bet    int
	Status Status
	Result Result
}

func newPlayer(handle, name string, chips int) *Player {
	return &Player{
		Handle: handle,
		Name:   name,
		Chips:  chips,
		Status: StatusWaiting,
	}
}

// resetForRound clears the per-round fields ahead of eligibility checks.
func (p *Player) resetForRound() {
	p.Hand = nil
	p.Score = 0
	p.Bet = 0
	p.Result = ResultNone
}
