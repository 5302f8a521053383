// Package wsserver implements the realtime chat hub over websocket.
package wsserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"deskchat-server/internal/domain/message"
	"deskchat-server/internal/domain/presence"
	"deskchat-server/internal/infrastructure/metrics"
)

// broadcastFrame is one encoded event headed for every client, optionally
// excluding a single connection.
type broadcastFrame struct {
	event   string
	payload []byte
	exclude *Client
}

// Hub fans events out to all connected clients. One goroutine owns the
// clients map; per-connection reads and writes never touch it directly.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastFrame

	messages  message.Service
	registry  presence.Registry
	opTimeout time.Duration
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

// NewHub wires the hub with its message and presence dependencies.
func NewHub(messages message.Service, registry presence.Registry, opTimeout time.Duration, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastFrame, 64),
		messages:   messages,
		registry:   registry,
		opTimeout:  opTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The chat front end is served from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With().Str("component", "ws-hub").Logger(),
	}
}

// Run owns the clients map until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.RecordConnect()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; !ok {
				continue
			}
			delete(h.clients, client)
			close(client.send)
			metrics.RecordDisconnect()
			h.dropPresence(client)

		case frame := <-h.broadcast:
			h.fanOut(frame)

		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

// shutdown closes every connection, then keeps draining hub traffic until
// the last pump has unregistered. Closing the connection rather than the
// send channel lets in-flight handlers finish without writing to a closed
// channel.
func (h *Hub) shutdown() {
	for client := range h.clients {
		client.conn.Close()
	}
	for len(h.clients) > 0 {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.RecordConnect()
			client.conn.Close()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; !ok {
				continue
			}
			delete(h.clients, client)
			close(client.send)
			metrics.RecordDisconnect()

		case <-h.broadcast:
			// Discarded: nothing should fan out mid-shutdown.
		}
	}
}

// fanOut delivers one frame to every client. Only the Run goroutine calls
// this.
func (h *Hub) fanOut(frame broadcastFrame) {
	metrics.RecordBroadcast(frame.event)
	for client := range h.clients {
		if client == frame.exclude {
			continue
		}
		client.enqueue(frame.payload)
	}
}

// dropPresence announces a departure for connections that had joined.
// Reading client.joined here is safe: the readPump that wrote it has
// already exited.
func (h *Hub) dropPresence(client *Client) {
	if !client.joined {
		return
	}
	metrics.JoinedUsers.Dec()
	h.registry.Leave(client.id)
	if payload, err := encodeEvent(EventUpdateUsers, h.registry.Snapshot()); err == nil {
		h.fanOut(broadcastFrame{event: EventUpdateUsers, payload: payload})
	}
	text := fmt.Sprintf("%s left the room", client.nickname)
	if payload, err := encodeEvent(EventSystemMessage, text); err == nil {
		h.fanOut(broadcastFrame{event: EventSystemMessage, payload: payload})
	}
}

// broadcastEvent encodes and queues one event for fan-out. Safe to call
// from any goroutine.
func (h *Hub) broadcastEvent(event string, data any, exclude *Client) {
	payload, err := encodeEvent(event, data)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode broadcast event")
		return
	}
	h.broadcast <- broadcastFrame{event: event, payload: payload, exclude: exclude}
}

// ServeWS upgrades the HTTP request, registers the connection and starts
// its pumps. The history replay is the first frame a new connection sees.
func (h *Hub) ServeWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			hub:  h,
			conn: conn,
			send: make(chan []byte, sendBufferSize),
		}
		h.register <- client

		go client.writePump()
		go func() {
			client.replayHistory()
			client.readPump()
		}()
	}
}
