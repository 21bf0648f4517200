package deck

import "testing"

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "10♥"},
		{NewCard(Diamonds, Queen), "Q♦"},
		{NewCard(Clubs, Two), "2♣"},
		{NewCard(Hearts, King), "K♥"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("Card.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestSuitIsRed(t *testing.T) {
	if !Hearts.IsRed() || !Diamonds.IsRed() {
		t.Error("Hearts and Diamonds should be red")
	}
	if Spades.IsRed() || Clubs.IsRed() {
		t.Error("Spades and Clubs should not be red")
	}
}

func TestIsFaceCard(t *testing.T) {
	for _, rank := range []Rank{Jack, Queen, King} {
		if !NewCard(Spades, rank).IsFaceCard() {
			t.Errorf("%s should be a face card", rank)
		}
	}
	for _, rank := range []Rank{Ace, Two, Ten} {
		if NewCard(Spades, rank).IsFaceCard() {
			t.Errorf("%s should not be a face card", rank)
		}
	}
}
