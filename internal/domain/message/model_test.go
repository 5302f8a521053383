package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"text", TypeText},
		{"image", TypeImage},
		{"IMAGE", TypeImage},
		{" image ", TypeImage},
		{"", TypeText},
		{"video", TypeText},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseType(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeFilter(t *testing.T) {
	tests := []struct {
		name string
		year string
		want int
	}{
		{"empty means any", "", 0},
		{"any keyword", "any", 0},
		{"any is case insensitive", "Any", 0},
		{"numeric value", "2024", 2024},
		{"whitespace trimmed", " 2024 ", 2024},
		{"garbage can never match", "soon", -1},
		{"zero can never match", "0", -1},
		{"negative can never match", "-3", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NormalizeFilter("", "", tt.year, "", "")
			assert.Equal(t, tt.want, filter.Year)
		})
	}
}

func TestNormalizeFilterTrimsStrings(t *testing.T) {
	filter := NormalizeFilter("  alice ", " hi ", "", "", "")
	assert.Equal(t, "alice", filter.Nickname)
	assert.Equal(t, "hi", filter.Keyword)
	assert.Zero(t, filter.Year)
	assert.Zero(t, filter.Month)
	assert.Zero(t, filter.Day)
}

func TestMessageToWire(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	wire := Message{
		ID:        7,
		Nickname:  "alice",
		Content:   "hello",
		Type:      TypeText,
		CreatedAt: at,
	}.ToWire()

	assert.Equal(t, "alice", wire.Nickname)
	assert.Equal(t, "hello", wire.Content)
	assert.Equal(t, TypeText, wire.MessageType)
	assert.Equal(t, at, wire.CreatedAt)
}
