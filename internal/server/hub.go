package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/game"
)

// Outbound message types besides the engine notification types.
const (
	MessageState         = "STATE"
	MessageCommandResult = "COMMAND_RESULT"
)

// Inbound message types.
const (
	ClientCommand = "command"
	ClientState   = "state"
)

// Envelope is a server to client message.
type Envelope struct {
	Type      string      `json:"type"`
	GameID    string      `json:"game_id,omitempty"`
	PlayerID  string      `json:"player_id,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// ClientMessage is a client to server message.
type ClientMessage struct {
	Type      string         `json:"type"`
	RequestID string         `json:"request_id,omitempty"`
	Command   string         `json:"command,omitempty"`
	Args      CommandRequest `json:"args"`
}

type incomingMessage struct {
	client  *Client
	message ClientMessage
}

type commandFunc func(ctx context.Context, name string, req CommandRequest) (interface{}, error)

// Hub fans engine notifications out to connected clients and feeds client
// commands back to the engine.
type Hub struct {
	engine *game.Engine
	logger *zap.Logger
	exec   commandFunc

	mu      sync.RWMutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	incoming   chan incomingMessage
	done       chan struct{}
}

// NewHub creates a hub for engine. Call Run to start it.
func NewHub(engine *game.Engine, logger *zap.Logger) *Hub {
	return &Hub{
		engine:     engine,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		incoming:   make(chan incomingMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run processes registrations, broadcasts and client commands until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.logger.Debug("ws client registered", zap.String("remote", c.remote))
			c.sendEnvelope(h.stateEnvelope())

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.logger.Debug("ws client unregistered", zap.String("remote", c.remote))

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()

		case in := <-h.incoming:
			go h.handle(ctx, in)
		}
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify is the engine notification handler. Phase changes are followed by
// a full state message.
func (h *Hub) Notify(n game.Notification) {
	h.publish(Envelope{
		Type:      n.Type,
		GameID:    n.GameID,
		PlayerID:  n.PlayerID,
		Timestamp: n.Timestamp,
		Data:      n.Data,
	})
	if n.Type == game.NotificationPhase {
		h.publish(h.stateEnvelope())
	}
}

func (h *Hub) publish(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Warn("failed to encode ws message", zap.String("type", env.Type), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("ws broadcast buffer full, dropping message", zap.String("type", env.Type))
	}
}

func (h *Hub) stateEnvelope() Envelope {
	snap := h.engine.Snapshot()
	return Envelope{
		Type:      MessageState,
		GameID:    snap.GameID,
		Timestamp: snap.TakenAt,
		Data:      snap,
	}
}

func (h *Hub) handle(ctx context.Context, in incomingMessage) {
	switch in.message.Type {
	case ClientState:
		env := h.stateEnvelope()
		env.RequestID = in.message.RequestID
		in.client.sendEnvelope(env)

	case ClientCommand:
		resp := CommandResponse{OK: true}
		if h.exec == nil {
			resp = CommandResponse{Error: "commands are not accepted on this connection"}
		} else if result, err := h.exec(ctx, in.message.Command, in.message.Args); err != nil {
			resp = CommandResponse{Error: err.Error()}
		} else {
			resp.Result = result
			snap := h.engine.Snapshot()
			resp.Snapshot = &snap
		}
		in.client.sendEnvelope(Envelope{
			Type:      MessageCommandResult,
			GameID:    h.engine.GameID(),
			RequestID: in.message.RequestID,
			Timestamp: time.Now(),
			Data:      resp,
		})

	default:
		h.logger.Debug("ignoring ws message", zap.String("type", in.message.Type))
	}
}
