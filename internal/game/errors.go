package game

import "errors"

// Guard failures surfaced to participants. ErrRoomNotFound and
// ErrGameInProgress are always reported to the initiator; the rest are only
// surfaced when the room is configured to do so.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrGameInProgress = errors.New("game already in progress")
	ErrInvalidBet     = errors.New("invalid bet")
	ErrIllegalAction  = errors.New("action not allowed right now")
)
