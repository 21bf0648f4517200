package server

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cardroom/blackjack/internal/game"
)

// Gateway routes traffic between live connections and the room registry. It
// owns the handle → connection and handle → room maps, so the game layer
// never sees sockets and connections never see rooms.
//
// The gateway lock is never held across a call into the registry: the
// registry calls back through Send on join broadcasts, and a departing
// room's broadcast must not find the gateway locked by its own goroutine.
type Gateway struct {
	mu       sync.RWMutex
	conns    map[string]*Connection
	rooms    map[string]string
	registry *game.Registry
	logger   *log.Logger
}

// NewGateway creates a gateway with no registry attached.
func NewGateway(logger *log.Logger) *Gateway {
	return &Gateway{
		conns:  make(map[string]*Connection),
		rooms:  make(map[string]string),
		logger: logger.WithPrefix("gateway"),
	}
}

// SetRegistry attaches the room registry. The registry needs the gateway as
// its sender and the gateway needs the registry for dispatch, so wiring
// happens in two steps at startup.
func (g *Gateway) SetRegistry(registry *game.Registry) {
	g.registry = registry
}

// Send implements game.Sender: it queues an event for one participant.
// Events for handles that already disconnected are dropped.
func (g *Gateway) Send(handle string, ev game.Event) {
	g.mu.RLock()
	conn := g.conns[handle]
	g.mu.RUnlock()
	if conn == nil {
		return
	}

	msg, err := fromEvent(ev)
	if err != nil {
		g.logger.Error("Failed to encode event", "type", ev.Type, "error", err)
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		g.logger.Debug("Failed to deliver event", "type", ev.Type, "handle", handle, "error", err)
	}
}

// register tracks a freshly upgraded connection.
func (g *Gateway) register(c *Connection) {
	g.mu.Lock()
	g.conns[c.Handle()] = c
	total := len(g.conns)
	g.mu.Unlock()
	g.logger.Info("Client connected", "handle", c.Handle(), "total", total)
}

// unregister drops a connection and removes the participant from their room.
// The room lookup and map cleanup finish before the registry call so the
// departure broadcast does not re-enter a locked gateway.
func (g *Gateway) unregister(c *Connection) {
	handle := c.Handle()

	g.mu.Lock()
	if _, ok := g.conns[handle]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.conns, handle)
	roomID := g.rooms[handle]
	delete(g.rooms, handle)
	total := len(g.conns)
	g.mu.Unlock()

	if roomID != "" && g.registry != nil {
		g.registry.Leave(handle, roomID)
	}
	_ = c.Close()
	g.logger.Info("Client disconnected", "handle", handle, "total", total)
}

// HandleMessage dispatches one inbound client message.
func (g *Gateway) HandleMessage(c *Connection, msg *Message) {
	g.logger.Debug("Received message", "type", msg.Type, "handle", c.Handle())

	if g.registry == nil {
		c.sendError("service_unavailable", "Game service not available")
		return
	}

	switch msg.Type {
	case MessageTypeCreateRoom:
		var data CreateRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create room data")
			return
		}
		g.handleCreateRoom(c, data)

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		g.handleJoinRoom(c, data)

	case MessageTypeStartGame:
		if room, ok := g.roomFor(c); ok {
			room.Start(c.Handle())
		}

	case MessageTypePlaceBet:
		var data PlaceBetData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse bet data")
			return
		}
		if room, ok := g.roomFor(c); ok {
			room.PlaceBet(c.Handle(), data.Amount)
		}

	case MessageTypeHit:
		if room, ok := g.roomFor(c); ok {
			room.Hit(c.Handle())
		}

	case MessageTypeStand:
		if room, ok := g.roomFor(c); ok {
			room.Stand(c.Handle())
		}

	case MessageTypeDoubleDown:
		if room, ok := g.roomFor(c); ok {
			room.DoubleDown(c.Handle())
		}

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

func (g *Gateway) handleCreateRoom(c *Connection, data CreateRoomData) {
	if data.Name == "" {
		c.sendError("invalid_name", "Player name required")
		return
	}
	if roomID, ok := g.roomID(c.Handle()); ok {
		c.sendError("already_in_room", "Already in room "+roomID)
		return
	}

	room, err := g.registry.CreateRoom(c.Handle(), data.Name)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}

	g.mu.Lock()
	g.rooms[c.Handle()] = room.ID()
	g.mu.Unlock()
	g.logger.Info("Room created", "room", room.ID(), "player", data.Name)
}

func (g *Gateway) handleJoinRoom(c *Connection, data JoinRoomData) {
	if data.Name == "" {
		c.sendError("invalid_name", "Player name required")
		return
	}
	if roomID, ok := g.roomID(c.Handle()); ok {
		c.sendError("already_in_room", "Already in room "+roomID)
		return
	}

	roomID := strings.ToUpper(strings.TrimSpace(data.RoomID))
	room, err := g.registry.JoinRoom(c.Handle(), data.Name, roomID)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrRoomNotFound):
			c.sendError("room_not_found", "Room not found: "+roomID)
		case errors.Is(err, game.ErrGameInProgress):
			c.sendError("game_in_progress", "The game in that room has already started")
		default:
			c.sendError("join_failed", err.Error())
		}
		return
	}

	g.mu.Lock()
	g.rooms[c.Handle()] = room.ID()
	g.mu.Unlock()
	g.logger.Info("Player joined room", "room", room.ID(), "player", data.Name)
}

// roomFor resolves the live room behind an action message, answering the
// client when there is none.
func (g *Gateway) roomFor(c *Connection) (*game.Room, bool) {
	roomID, ok := g.roomID(c.Handle())
	if !ok {
		c.sendError("not_in_room", "Join a room first")
		return nil, false
	}
	room, ok := g.registry.Room(roomID)
	if !ok {
		c.sendError("room_not_found", "Room not found: "+roomID)
		return nil, false
	}
	return room, true
}

func (g *Gateway) roomID(handle string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	roomID, ok := g.rooms[handle]
	return roomID, ok && roomID != ""
}
