package wsserver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseStringAcceptsStringsAndNumbers(t *testing.T) {
	var payload searchPayload
	raw := `{"username":"alice","keyword":"hi","year":2024,"month":"5","day":"any"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, "alice", payload.Username.String())
	assert.Equal(t, "hi", payload.Keyword.String())
	assert.Equal(t, "2024", payload.Year.String())
	assert.Equal(t, "5", payload.Month.String())
	assert.Equal(t, "any", payload.Day.String())
}

func TestLooseStringNullAndMissing(t *testing.T) {
	var payload searchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"year":null}`), &payload))

	assert.Equal(t, "", payload.Year.String())
	assert.Equal(t, "", payload.Month.String())
}

func TestEncodeEventEnvelope(t *testing.T) {
	payload, err := encodeEvent(EventSystemMessage, "alice joined the room")
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(payload, &envelope))
	assert.Equal(t, EventSystemMessage, envelope.Event)

	var text string
	require.NoError(t, json.Unmarshal(envelope.Data, &text))
	assert.Equal(t, "alice joined the room", text)
}
