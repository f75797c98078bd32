package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/draft/events"
)

func TestToWebSocketEvent(t *testing.T) {
	publishedAt := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	payload := json.RawMessage(`{"pick_id":"p1","player_name":"Bijan Robinson","pick_number":7}`)

	event, err := toWebSocketEvent("evt-1", "PickMade", "draft-1", publishedAt, payload)
	require.NoError(t, err)

	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, "draft-1", event.DraftID)
	assert.Equal(t, events.EventTypePickMade, event.Type)
	assert.Equal(t, publishedAt, event.Timestamp)
	assert.JSONEq(t, string(payload), string(event.Data))
}

func TestToWebSocketEventRejectsUnknownType(t *testing.T) {
	_, err := toWebSocketEvent("evt-1", "DraftPaused", "draft-1", time.Now(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestParseEventPayload(t *testing.T) {
	madeAt := time.Date(2025, time.September, 1, 12, 30, 0, 0, time.UTC)
	event := &DraftEvent{
		ID:      "evt-2",
		DraftID: "draft-1",
		Type:    events.EventTypePickMade,
		Data: json.RawMessage(`{
			"pick_id": "p1",
			"player_id": "pl1",
			"player_name": "Justin Jefferson",
			"team_number": 4,
			"round": 1,
			"pick_in_round": 4,
			"pick_number": 4,
			"is_user_pick": true,
			"made_at": "2025-09-01T12:30:00Z"
		}`),
	}

	parsed, err := ParseEventPayload(event)
	require.NoError(t, err)

	payload, ok := parsed.(events.PickMadePayload)
	require.True(t, ok)
	assert.Equal(t, "Justin Jefferson", payload.PlayerName)
	assert.Equal(t, 4, payload.TeamNumber)
	assert.True(t, payload.IsUserPick)
	assert.Equal(t, madeAt, payload.MadeAt.UTC())
}

func TestParseEventPayloadUnknownType(t *testing.T) {
	event := &DraftEvent{Type: events.EventType("TimerTick"), Data: json.RawMessage(`{}`)}

	parsed, err := ParseEventPayload(event)
	require.NoError(t, err)
	assert.Nil(t, parsed)
}
