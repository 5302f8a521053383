package wsserver

import (
	"encoding/json"
	"strconv"
)

// Client → server events.
const (
	EventJoin           = "join"
	EventChatMessage    = "chat message"
	EventSearchMessages = "search messages"
)

// Server → client events.
const (
	EventLoadHistory   = "load history"
	EventSystemMessage = "system message"
	EventUpdateUsers   = "update users"
	EventSearchResults = "search results"
	EventChatError     = "chat error"
)

// Envelope is the JSON frame shared by both directions: a name plus an
// event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func encodeEvent(event string, data any) ([]byte, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{Event: event, Data: data})
}

// chatMessagePayload is the inbound chat frame. Clients send the kind under
// "type"; the stored row echoes it back as "message_type".
type chatMessagePayload struct {
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type searchPayload struct {
	Username looseString `json:"username"`
	Keyword  looseString `json:"keyword"`
	Year     looseString `json:"year"`
	Month    looseString `json:"month"`
	Day      looseString `json:"day"`
}

type chatErrorPayload struct {
	Error string `json:"error"`
}

// looseString accepts either a JSON string or a bare number, since browser
// clients send date parts both ways.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = looseString(value)
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = looseString(strconv.FormatFloat(number, 'f', -1, 64))
	return nil
}

func (s looseString) String() string {
	return string(s)
}
