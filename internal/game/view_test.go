package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotMasksOpponentsDuringPlay(t *testing.T) {
	r := newPlayingRig(t, DefaultConfig(), 100)

	snap := r.room.Snapshot("h1")

	own := snap.Players["h1"]
	require.Len(t, own.Hand, 2)
	for _, c := range own.Hand {
		assert.NotEqual(t, "?", c.Suit)
		assert.NotEqual(t, "?", c.Value)
	}
	assert.False(t, own.Score.Masked)
	assert.Equal(t, r.room.players["h1"].Score, own.Score.Value)

	other := snap.Players["h2"]
	require.Len(t, other.Hand, 2, "masked hands keep their card count")
	for _, c := range other.Hand {
		assert.Equal(t, maskedCard, c)
	}
	assert.True(t, other.Score.Masked)
	assert.Equal(t, 0, other.Score.Value)

	// Public fields stay visible on a masked player.
	assert.Equal(t, "Bob", other.Name)
	assert.Equal(t, 1000, other.Chips)
	assert.Equal(t, 100, other.CurrentBet)
	assert.Equal(t, "playing", other.Status)
}

func TestSnapshotDealerShowsOneCard(t *testing.T) {
	r := newPlayingRig(t, DefaultConfig(), 100)

	snap := r.room.Snapshot("h1")
	require.Len(t, snap.Dealer.Hand, 2)
	assert.NotEqual(t, maskedCard, snap.Dealer.Hand[0])
	assert.Equal(t, maskedCard, snap.Dealer.Hand[1])
	assert.Equal(t, Score(r.room.dealer.Hand[:1]), snap.Dealer.Score)
	assert.Less(t, snap.Dealer.Score, r.room.dealer.Score+1, "up-card score never exceeds the full total")
}

func TestSnapshotRevealsWhenFinished(t *testing.T) {
	r := newPlayingRig(t, DefaultConfig(), 100)
	r.room.Stand("h1")
	r.room.Stand("h2")
	require.Equal(t, PhaseFinished, r.room.Phase())

	snap := r.room.Snapshot("h1")

	other := snap.Players["h2"]
	for _, c := range other.Hand {
		assert.NotEqual(t, maskedCard, c)
	}
	assert.False(t, other.Score.Masked)
	assert.Equal(t, r.room.players["h2"].Score, other.Score.Value)

	assert.GreaterOrEqual(t, len(snap.Dealer.Hand), 2)
	for _, c := range snap.Dealer.Hand {
		assert.NotEqual(t, maskedCard, c)
	}
	assert.Equal(t, r.room.dealer.Score, snap.Dealer.Score)
}

func TestSnapshotEmptyDealerBeforeDeal(t *testing.T) {
	r := newRig(t, DefaultConfig(), 1)
	r.room.Start("h1")

	snap := r.room.Snapshot("h1")
	assert.NotNil(t, snap.Dealer.Hand)
	assert.Empty(t, snap.Dealer.Hand)
	assert.Equal(t, 0, snap.Dealer.Score)
	assert.Equal(t, "betting", snap.GamePhase)
	assert.Equal(t, 1, snap.CurrentRound)
	assert.Equal(t, 10, snap.MaxRounds)
}

func TestScoreViewJSON(t *testing.T) {
	masked, err := json.Marshal(ScoreView{Value: 18, Masked: true})
	require.NoError(t, err)
	assert.Equal(t, `"?"`, string(masked))

	open, err := json.Marshal(ScoreView{Value: 18})
	require.NoError(t, err)
	assert.Equal(t, `18`, string(open))

	var back ScoreView
	require.NoError(t, json.Unmarshal(masked, &back))
	assert.True(t, back.Masked)
	require.NoError(t, json.Unmarshal(open, &back))
	assert.Equal(t, ScoreView{Value: 18}, back)
}

func TestSnapshotJSONShape(t *testing.T) {
	r := newPlayingRig(t, DefaultConfig(), 100)

	raw, err := json.Marshal(r.room.Snapshot("h1"))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"roomId", "creatorId", "players", "dealer", "gamePhase", "currentRound", "maxRounds"} {
		assert.Contains(t, decoded, key)
	}

	var players map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["players"], &players))
	assert.Equal(t, `"?"`, string(players["h2"]["score"]))

	var hand []CardView
	require.NoError(t, json.Unmarshal([]byte(`[{"suit":"?","value":"?"}]`), &hand))
	assert.Equal(t, maskedCard, hand[0])
}
