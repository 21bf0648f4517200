package game

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjack/internal/roomid"
)

func TestRegistryCreateAndJoin(t *testing.T) {
	sender := &recordingSender{}
	reg := NewRegistry(DefaultConfig(), quartz.NewMock(t), sender, testLogger(), WithSeed(7))

	room, err := reg.CreateRoom("h1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, "h1", room.Creator())
	require.NoError(t, roomid.Validate(room.ID()))

	found, ok := reg.Room(room.ID())
	require.True(t, ok)
	assert.Same(t, room, found)

	joined, err := reg.JoinRoom("h2", "Bob", room.ID())
	require.NoError(t, err)
	assert.Same(t, room, joined)
	assert.Equal(t, 2, room.PlayerCount())

	_, err = reg.JoinRoom("h3", "Cara", "ZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistryDistinctRoomCodes(t *testing.T) {
	sender := &recordingSender{}
	reg := NewRegistry(DefaultConfig(), quartz.NewMock(t), sender, testLogger(), WithSeed(7))

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		room, err := reg.CreateRoom("h1", "Alice")
		require.NoError(t, err)
		assert.False(t, seen[room.ID()], "room code %q reused", room.ID())
		seen[room.ID()] = true
	}
	assert.Equal(t, 25, reg.Count())
}

// scriptedSource replays a fixed index stream so a code collision can be
// forced deterministically.
type scriptedSource struct {
	indices []int
	pos     int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.indices[s.pos%len(s.indices)] % n
	s.pos++
	return v
}

func TestRegistryRetriesOnCodeCollision(t *testing.T) {
	// Two rooms worth of "AAAA", then "AAAB".
	src := &scriptedSource{indices: []int{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	}}
	sender := &recordingSender{}
	reg := NewRegistry(DefaultConfig(), quartz.NewMock(t), sender, testLogger(),
		WithSeed(7), WithIDGenerator(roomid.NewGenerator(src)))

	first, err := reg.CreateRoom("h1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "AAAA", first.ID())

	second, err := reg.CreateRoom("h2", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "AAAB", second.ID())
	assert.Equal(t, 2, reg.Count())
}

func TestRegistryLeaveDestroysEmptyRoom(t *testing.T) {
	sender := &recordingSender{}
	reg := NewRegistry(DefaultConfig(), quartz.NewMock(t), sender, testLogger(), WithSeed(7))

	room, err := reg.CreateRoom("h1", "Alice")
	require.NoError(t, err)
	_, err = reg.JoinRoom("h2", "Bob", room.ID())
	require.NoError(t, err)

	reg.Leave("h2", room.ID())
	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, 1, room.PlayerCount())

	reg.Leave("h1", room.ID())
	assert.Equal(t, 0, reg.Count())
	_, ok := reg.Room(room.ID())
	assert.False(t, ok)

	// Unknown rooms and unknown handles are ignored.
	reg.Leave("h1", room.ID())
	reg.Leave("nobody", "ZZZZ")
	assert.Equal(t, 0, reg.Count())
}

func TestRegistryRoomsAreIsolated(t *testing.T) {
	sender := &recordingSender{}
	reg := NewRegistry(DefaultConfig(), quartz.NewMock(t), sender, testLogger(), WithSeed(7))

	a, err := reg.CreateRoom("h1", "Alice")
	require.NoError(t, err)
	b, err := reg.CreateRoom("h2", "Bob")
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())

	a.Start("h1")
	assert.Equal(t, PhaseBetting, a.Phase())
	assert.Equal(t, PhaseWaiting, b.Phase())
}
