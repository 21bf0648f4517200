package game

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

type sentEvent struct {
	handle string
	event  Event
}

// recordingSender captures everything the game core emits, in order.
type recordingSender struct {
	mu     sync.Mutex
	events []sentEvent
}

func (s *recordingSender) Send(handle string, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sentEvent{handle: handle, event: ev})
}

func (s *recordingSender) ofType(t EventType) []sentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sentEvent
	for _, e := range s.events {
		if e.event.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (s *recordingSender) countFor(handle string, t EventType) int {
	n := 0
	for _, e := range s.ofType(t) {
		if e.handle == handle {
			n++
		}
	}
	return n
}

func (s *recordingSender) lastSnapshot(handle string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if e.handle != handle {
			continue
		}
		if e.event.Type == EventGameState || e.event.Type == EventJoinSuccess {
			return e.event.Data.(Snapshot), true
		}
	}
	return Snapshot{}, false
}

func (s *recordingSender) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

type rig struct {
	reg    *Registry
	room   *Room
	clock  *quartz.Mock
	sender *recordingSender
}

// newRig creates a registry with a two-player room (Alice h1 creator, Bob h2).
func newRig(t *testing.T, cfg Config, seed int64) *rig {
	t.Helper()
	clock := quartz.NewMock(t)
	sender := &recordingSender{}
	reg := NewRegistry(cfg, clock, sender, testLogger(), WithSeed(seed))

	room, err := reg.CreateRoom("h1", "Alice")
	require.NoError(t, err)
	_, err = reg.JoinRoom("h2", "Bob", room.ID())
	require.NoError(t, err)

	return &rig{reg: reg, room: room, clock: clock, sender: sender}
}

// newPlayingRig searches seeds for a deal that leaves both players still
// deciding (no blackjack on the deal), so the turn loop can be exercised
// deterministically.
func newPlayingRig(t *testing.T, cfg Config, bet int) *rig {
	t.Helper()
	for seed := int64(0); seed < 64; seed++ {
		r := newRig(t, cfg, seed)
		r.room.Start("h1")
		r.room.PlaceBet("h1", bet)
		r.room.PlaceBet("h2", bet)
		if r.room.players["h1"].Status == StatusPlaying && r.room.players["h2"].Status == StatusPlaying {
			return r
		}
	}
	t.Fatal("no seed produced a deal without an instant blackjack")
	return nil
}
