package server

import (
	"errors"
	"sync"

	"quizboard/internal/engine"
	"quizboard/internal/lobby"
	"quizboard/internal/logger"
	"quizboard/internal/protocol"

	"github.com/rs/zerolog"
)

// Hub manages WebSocket connections for one room. Its Run goroutine is the
// only writer of the room, so intents apply in arrival order.
type Hub struct {
	room       *lobby.Room
	log        zerolog.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	// onIdle runs on the hub goroutine when the last client leaves an
	// empty room, just before Run returns.
	onIdle func(*Hub)
}

func NewHub(room *lobby.Room, onIdle func(*Hub)) *Hub {
	return &Hub{
		room:       room,
		log:        logger.Room(room.ID),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		onIdle:     onIdle,
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	h.log.Info().Msg("hub started")

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info().Str("player", client.PlayerID).Int("clients", len(h.clients)).Msg("client connected")
			h.sendStateToClient(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; !ok {
				continue
			}
			delete(h.clients, client)
			close(client.send)
			h.log.Info().Str("player", client.PlayerID).Int("clients", len(h.clients)).Msg("client disconnected")
			h.handleDisconnect(client)

			if len(h.clients) == 0 && h.room.Empty() {
				if h.onIdle != nil {
					h.onIdle(h)
				}
				h.log.Info().Msg("hub stopped: room empty")
				return
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			for client := range h.clients {
				close(client.send)
			}
			h.clients = nil
			h.log.Info().Msg("hub stopped")
			return
		}
	}
}

// Stop shuts the hub down and closes every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	if msg.Client.PlayerID == "" {
		msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{
			Code:    protocol.CodeReadOnly,
			Message: "display connections cannot send intents",
		}))
		return
	}
	action, err := protocol.DecodeAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err)
		return
	}
	events, err := h.room.Apply(msg.Client.PlayerID, action)
	if err != nil {
		h.log.Debug().Err(err).
			Str("player", msg.Client.PlayerID).
			Str("type", msg.Envelope.Type).
			Msg("intent rejected")
		h.sendError(msg.Client, err)
		return
	}
	h.broadcastEvents(events)
	h.broadcastState()
}

// handleDisconnect removes a player once their last connection is gone.
func (h *Hub) handleDisconnect(client *Client) {
	if client.PlayerID == "" {
		return
	}
	for other := range h.clients {
		if other.PlayerID == client.PlayerID {
			return
		}
	}
	events, err := h.room.Apply(client.PlayerID, engine.Action{Type: engine.ActionLeave})
	if err != nil {
		if !errors.Is(err, engine.ErrPlayerNotFound) {
			h.log.Warn().Err(err).Str("player", client.PlayerID).Msg("leave failed")
		}
		return
	}
	h.broadcastEvents(events)
	h.broadcastState()
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		env := protocol.MustEnvelope(protocol.MsgEvent, ev)
		h.broadcastAll(env)
	}
}

// broadcastState sends every client a view taken under one lock, so all
// clients see the same revision of the room.
func (h *Hub) broadcastState() {
	h.room.Do(func(g *engine.Game) {
		for client := range h.clients {
			client.SendEnvelope(protocol.MustEnvelope(protocol.MsgRoomState, g.ViewFor(client.PlayerID)))
		}
	})
}

func (h *Hub) sendStateToClient(client *Client) {
	view := h.room.ViewFor(client.PlayerID)
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgRoomState, view))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	for client := range h.clients {
		client.SendEnvelope(env)
	}
}

func (h *Hub) sendError(client *Client, err error) {
	client.SendEnvelope(protocol.NewError(err))
}
