package game

import "github.com/cardroom/blackjack/internal/deck"

// Score values a blackjack hand. Face cards count 10 and aces count 11,
// reduced to 1 one at a time while the total exceeds 21.
func Score(hand []deck.Card) int {
	score := 0
	aces := 0
	for _, card := range hand {
		switch {
		case card.Rank == deck.Ace:
			aces++
			score += 11
		case card.IsFaceCard():
			score += 10
		default:
			score += int(card.Rank)
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}
