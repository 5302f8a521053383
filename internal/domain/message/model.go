package message

import (
	"strconv"
	"strings"
	"time"
)

// Type discriminates how a message body should be rendered.
type Type string

const (
	// TypeText is a plain chat line.
	TypeText Type = "text"
	// TypeImage marks content as an image URL.
	TypeImage Type = "image"
)

// ParseType maps arbitrary input onto a known message type, defaulting to text.
func ParseType(value string) Type {
	if Type(strings.ToLower(strings.TrimSpace(value))) == TypeImage {
		return TypeImage
	}
	return TypeText
}

// Message is a persisted chat message. Rows are immutable; Nickname is a
// point-in-time copy, never re-resolved.
type Message struct {
	ID        uint
	Nickname  string
	Content   string
	Type      Type
	CreatedAt time.Time
}

// WireMessage is the JSON shape shared by history replay, broadcast and
// search results. Content travels as "msg".
type WireMessage struct {
	Nickname    string    `json:"nickname"`
	Content     string    `json:"msg"`
	MessageType Type      `json:"message_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToWire converts a stored message to its wire shape.
func (m Message) ToWire() WireMessage {
	return WireMessage{
		Nickname:    m.Nickname,
		Content:     m.Content,
		MessageType: m.Type,
		CreatedAt:   m.CreatedAt,
	}
}

// SearchFilter holds normalized search predicates. Zero string fields and
// zero date parts are absent from the query; a negative date part can never
// match a row.
type SearchFilter struct {
	Nickname string
	Keyword  string
	Year     int
	Month    int
	Day      int
}

// NormalizeFilter builds a SearchFilter from raw client input. "any" and
// empty values mean no constraint; unparsable date parts are kept as
// impossible predicates so the search returns nothing rather than erroring.
func NormalizeFilter(nickname, keyword, year, month, day string) SearchFilter {
	return SearchFilter{
		Nickname: strings.TrimSpace(nickname),
		Keyword:  strings.TrimSpace(keyword),
		Year:     parseDatePart(year),
		Month:    parseDatePart(month),
		Day:      parseDatePart(day),
	}
}

func parseDatePart(value string) int {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "any") {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return -1
	}
	return n
}
