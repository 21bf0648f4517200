package game

import (
	"encoding/json"

	"github.com/cardroom/blackjack/internal/deck"
)

// Snapshot is the personalized view of a room sent to one participant. The
// projection runs once per recipient on every broadcast because which player
// counts as "own" differs per recipient.
type Snapshot struct {
	RoomID       string                `json:"roomId"`
	CreatorID    string                `json:"creatorId"`
	Players      map[string]PlayerView `json:"players"`
	Dealer       DealerView            `json:"dealer"`
	GamePhase    string                `json:"gamePhase"`
	CurrentRound int                   `json:"currentRound"`
	MaxRounds    int                   `json:"maxRounds"`
}

// CardView is a card as shown to a recipient, possibly masked.
type CardView struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

var maskedCard = CardView{Suit: "?", Value: "?"}

// ScoreView is a score that serializes as its number, or as "?" when the
// hand it belongs to is hidden from the recipient.
type ScoreView struct {
	Value  int
	Masked bool
}

// MarshalJSON renders the masked placeholder or the plain number.
func (s ScoreView) MarshalJSON() ([]byte, error) {
	if s.Masked {
		return json.Marshal("?")
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts either form back.
func (s *ScoreView) UnmarshalJSON(b []byte) error {
	if string(b) == `"?"` {
		*s = ScoreView{Masked: true}
		return nil
	}
	*s = ScoreView{}
	return json.Unmarshal(b, &s.Value)
}

// PlayerView is a player record as shown to a recipient.
type PlayerView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Chips      int        `json:"chips"`
	CurrentBet int        `json:"currentBet"`
	Hand       []CardView `json:"hand"`
	Score      ScoreView  `json:"score"`
	Status     string     `json:"status"`
	Result     string     `json:"result"`
}

// DealerView is the dealer as shown to a recipient: first card up and hole
// card masked until the round is over.
type DealerView struct {
	Hand  []CardView `json:"hand"`
	Score int        `json:"score"`
}

// snapshotFor builds the view for one recipient. Callers hold the lock.
func (r *Room) snapshotFor(viewer string) Snapshot {
	reveal := r.phase == PhaseFinished || r.phase == PhaseEnded

	players := make(map[string]PlayerView, len(r.players))
	for handle, p := range r.players {
		players[handle] = playerView(p, reveal || handle == viewer)
	}

	return Snapshot{
		RoomID:       r.id,
		CreatorID:    r.creator,
		Players:      players,
		Dealer:       r.dealerView(reveal),
		GamePhase:    r.phase.String(),
		CurrentRound: r.round,
		MaxRounds:    r.cfg.MaxRounds,
	}
}

func playerView(p *Player, revealed bool) PlayerView {
	v := PlayerView{
		ID:         p.Handle,
		Name:       p.Name,
		Chips:      p.Chips,
		CurrentBet: p.Bet,
		Status:     p.Status.String(),
		Result:     string(p.Result),
	}
	if revealed {
		v.Hand = cardViews(p.Hand)
		v.Score = ScoreView{Value: p.Score}
	} else {
		v.Hand = maskedHand(len(p.Hand))
		v.Score = ScoreView{Masked: true}
	}
	return v
}

func (r *Room) dealerView(reveal bool) DealerView {
	switch {
	case reveal:
		return DealerView{Hand: cardViews(r.dealer.Hand), Score: r.dealer.Score}
	case len(r.dealer.Hand) > 0:
		return DealerView{
			Hand:  []CardView{cardView(r.dealer.Hand[0]), maskedCard},
			Score: Score(r.dealer.Hand[:1]),
		}
	default:
		return DealerView{Hand: []CardView{}, Score: 0}
	}
}

func cardView(c deck.Card) CardView {
	return CardView{Suit: c.Suit.String(), Value: c.Rank.String()}
}

func cardViews(hand []deck.Card) []CardView {
	views := make([]CardView, len(hand))
	for i, c := range hand {
		views[i] = cardView(c)
	}
	return views
}

func maskedHand(n int) []CardView {
	views := make([]CardView, n)
	for i := range views {
		views[i] = maskedCard
	}
	return views
}
