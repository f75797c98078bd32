package events

import (
	"time"
)

// Event types and payloads shared between the draft and gateway packages.
// The outbox row and the publish envelope carry the draft ID, payloads
// only repeat it for draft lifecycle events.

// EventType identifies a draft event on the wire.
type EventType string

const (
	EventTypePickMade       EventType = "PickMade"
	EventTypePickUndone     EventType = "PickUndone"
	EventTypeDraftStarted   EventType = "DraftStarted"
	EventTypeDraftCompleted EventType = "DraftCompleted"
	EventTypeDraftAbandoned EventType = "DraftAbandoned"
)

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	PickID      string    `json:"pick_id"`
	PlayerID    string    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	TeamNumber  int       `json:"team_number"`
	Round       int       `json:"round"`
	PickInRound int       `json:"pick_in_round"`
	PickNumber  int       `json:"pick_number"`
	IsUserPick  bool      `json:"is_user_pick"`
	MadeAt      time.Time `json:"made_at"`
}

// PickUndonePayload is the payload for a PickUndone event
type PickUndonePayload struct {
	PickID     string    `json:"pick_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	TeamNumber int       `json:"team_number"`
	PickNumber int       `json:"pick_number"`
	UndoneAt   time.Time `json:"undone_at"`
}

// DraftStartedPayload is the payload for a DraftStarted event
type DraftStartedPayload struct {
	DraftID    string    `json:"draft_id"`
	DraftType  string    `json:"draft_type"`
	StartedAt  time.Time `json:"started_at"`
	TotalPicks int       `json:"total_picks"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}

// DraftAbandonedPayload is the payload for a DraftAbandoned event
type DraftAbandonedPayload struct {
	DraftID     string    `json:"draft_id"`
	AbandonedAt time.Time `json:"abandoned_at"`
	Reason      string    `json:"reason"`
}
