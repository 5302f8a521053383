package wsserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"deskchat-server/internal/domain/message"
	"deskchat-server/internal/infrastructure/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// Client is one websocket connection. The hub owns the clients map; reads
// happen on readPump, writes on writePump, one goroutine each.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// joined and nickname are owned by readPump. The hub reads them only
	// after the readPump has exited (via the unregister channel).
	joined   bool
	nickname string
}

// enqueue hands a frame to the write pump, dropping it if the client cannot
// keep up.
func (c *Client) enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		c.hub.log.Warn().Str("conn_id", c.id).Msg("send buffer full, dropping frame")
	}
}

func (c *Client) unicast(event string, data any) {
	payload, err := encodeEvent(event, data)
	if err != nil {
		c.hub.log.Error().Err(err).Str("event", event).Msg("encode unicast event")
		return
	}
	c.enqueue(payload)
}

// readPump consumes frames until the connection drops, dispatching each
// event to its handler.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Err(err).Str("conn_id", c.id).Msg("websocket closed unexpectedly")
			}
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			c.hub.log.Warn().Err(err).Str("conn_id", c.id).Msg("malformed event frame")
			continue
		}

		switch envelope.Event {
		case EventJoin:
			c.handleJoin(envelope.Data)
		case EventChatMessage:
			c.handleChatMessage(envelope.Data)
		case EventSearchMessages:
			c.handleSearch(envelope.Data)
		default:
			c.hub.log.Debug().Str("event", envelope.Event).Str("conn_id", c.id).Msg("ignoring unknown event")
		}
	}
}

// handleJoin registers the nickname and announces the arrival. Re-joining
// on the same connection overwrites the previous nickname.
func (c *Client) handleJoin(data json.RawMessage) {
	var nickname string
	if err := json.Unmarshal(data, &nickname); err != nil {
		c.hub.log.Warn().Err(err).Str("conn_id", c.id).Msg("malformed join payload")
		return
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return
	}

	firstJoin := !c.joined
	c.nickname = nickname
	c.joined = true
	c.hub.registry.Join(c.id, nickname)
	if firstJoin {
		metrics.JoinedUsers.Inc()
	}

	c.hub.broadcastEvent(EventUpdateUsers, c.hub.registry.Snapshot(), nil)
	c.hub.broadcastEvent(EventSystemMessage, fmt.Sprintf("%s joined the room", nickname), c)
}

// handleChatMessage persists the line, then broadcasts the stored row to
// everyone including the sender. A message from a connection that never
// joined is dropped.
func (c *Client) handleChatMessage(data json.RawMessage) {
	if !c.joined {
		return
	}

	var payload chatMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.hub.log.Warn().Err(err).Str("conn_id", c.id).Msg("malformed chat message payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.hub.opTimeout)
	defer cancel()

	stored, err := c.hub.messages.Append(ctx, c.nickname, payload.Msg, message.ParseType(payload.Type))
	if err != nil {
		metrics.MessagesDropped.Inc()
		c.hub.log.Error().Err(err).Str("nickname", c.nickname).Msg("persist chat message")
		c.unicast(EventChatError, chatErrorPayload{Error: "message could not be saved"})
		return
	}
	metrics.MessagesStored.Inc()

	c.hub.broadcastEvent(EventChatMessage, stored.ToWire(), nil)
}

// handleSearch runs a filtered history search and answers only the
// requesting connection.
func (c *Client) handleSearch(data json.RawMessage) {
	var payload searchPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.hub.log.Warn().Err(err).Str("conn_id", c.id).Msg("malformed search payload")
		return
	}

	filter := message.NormalizeFilter(
		payload.Username.String(),
		payload.Keyword.String(),
		payload.Year.String(),
		payload.Month.String(),
		payload.Day.String(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.hub.opTimeout)
	defer cancel()

	results, err := c.hub.messages.Search(ctx, filter)
	if err != nil {
		c.unicast(EventChatError, chatErrorPayload{Error: "search failed"})
		return
	}
	c.unicast(EventSearchResults, results)
}

// replayHistory sends the recent-message window to a fresh connection.
func (c *Client) replayHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), c.hub.opTimeout)
	defer cancel()

	history, err := c.hub.messages.RecentHistory(ctx)
	if err != nil {
		c.hub.log.Error().Err(err).Str("conn_id", c.id).Msg("load history for new connection")
		return
	}
	c.unicast(EventLoadHistory, history)
}

// writePump flushes queued frames and keeps the connection alive with
// periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
