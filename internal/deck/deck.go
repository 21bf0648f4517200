package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned by Draw when no cards remain. A full deck covers
// every round the room can play, so hitting this indicates a bug upstream.
var ErrEmptyDeck = errors.New("deck: no cards remaining")

// Deck is an ordered sequence of playing cards. A fresh deck is built and
// shuffled at the start of every round and is owned by exactly one room.
type Deck struct {
	cards []Card
}

// New builds a full 52-card deck shuffled with the provided rng.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
