package game

import (
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/blackjack/internal/randutil"
	"github.com/cardroom/blackjack/internal/roomid"
)

// Registry owns every live room. It is an explicit instance rather than
// package state so tests and embedders can run isolated registries.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	cfg    Config
	clock  quartz.Clock
	sender Sender
	logger *log.Logger
	ids    *roomid.Generator
	seeds  *rand.Rand
}

// Option customises a Registry.
type Option func(*Registry)

// WithSeed makes room codes and deck shuffles deterministic, for tests.
func WithSeed(seed int64) Option {
	return func(r *Registry) {
		r.seeds = randutil.New(seed)
		r.ids = roomid.NewGenerator(randutil.New(seed))
	}
}

// WithIDGenerator substitutes the room code generator.
func WithIDGenerator(g *roomid.Generator) Option {
	return func(r *Registry) {
		r.ids = g
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config, clock quartz.Clock, sender Sender, logger *log.Logger, opts ...Option) *Registry {
	r := &Registry{
		rooms:  make(map[string]*Room),
		cfg:    cfg,
		clock:  clock,
		sender: sender,
		logger: logger.WithPrefix("registry"),
		ids:    roomid.NewGenerator(nil),
		seeds:  randutil.NewFromTime(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateRoom allocates a fresh room code, creates the room and joins the
// requesting participant as its creator.
func (reg *Registry) CreateRoom(handle, name string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := reg.ids.Generate()
	for reg.rooms[id] != nil {
		id = reg.ids.Generate()
	}

	room := newRoom(id, reg.cfg, reg.clock, reg.sender, randutil.New(reg.seeds.Int64()), reg.logger)
	reg.rooms[id] = room
	reg.logger.Info("room created", "room", id, "creator", name)

	if err := room.Join(handle, name); err != nil {
		// A fresh waiting room always accepts its creator.
		delete(reg.rooms, id)
		return nil, err
	}
	return room, nil
}

// JoinRoom adds a participant to an existing room.
func (reg *Registry) JoinRoom(handle, name, roomID string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := room.Join(handle, name); err != nil {
		return nil, err
	}
	return room, nil
}

// Leave removes a participant from a room and destroys the room when the
// last participant departs, cancelling any pending timers.
func (reg *Registry) Leave(handle, roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return
	}
	if _, empty := room.Leave(handle); empty {
		delete(reg.rooms, roomID)
		reg.logger.Info("room destroyed", "room", roomID)
	}
}

// Room looks up a live room by code.
func (reg *Registry) Room(roomID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[roomID]
	return room, ok
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
