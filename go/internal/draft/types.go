package draft

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// CreateDraftRequest represents a request to create a new draft
type CreateDraftRequest struct {
	UserID        uuid.UUID          `json:"user_id"`
	Sport         models.Sport       `json:"sport"`
	DraftType     models.DraftType   `json:"draft_type"`
	ScoringType   models.ScoringType `json:"scoring_type"`
	NumTeams      int                `json:"num_teams"`
	DraftPosition int                `json:"draft_position"`
	RosterSize    int                `json:"roster_size"`
	Settings      json.RawMessage    `json:"settings,omitempty"`
}

// MakePickRequest records the player taken at one overall pick slot.
// Round, pick in round and the user-pick flag are derived server side,
// never trusted from the caller.
type MakePickRequest struct {
	DraftID    uuid.UUID `json:"draft_id"`
	PlayerID   uuid.UUID `json:"player_id"`
	TeamNumber int       `json:"team_number"`
	PickNumber int       `json:"pick_number"`
}

// UndoPickRequest removes the requesting seat's most recent pick.
type UndoPickRequest struct {
	DraftID    uuid.UUID `json:"draft_id"`
	TeamNumber int       `json:"team_number"`
}

// PickWithPlayer joins a pick with catalog info for display.
type PickWithPlayer struct {
	models.DraftPick
	PlayerName     string `json:"player_name"`
	PlayerTeam     string `json:"player_team"`
	PlayerPosition string `json:"player_position"`
}

// OutboxInsert is an event row written in the same transaction as the
// state change it describes.
type OutboxInsert struct {
	EventType events.EventType
	Payload   []byte
}

// RecordPickParams carries the full effect of one validated pick.
// PrevPick guards the currentPick advance, the update only lands if the
// draft is still at that pick.
type RecordPickParams struct {
	Pick        models.DraftPick
	PrevPick    int
	NewRound    int
	NewPick     int
	NewStatus   models.DraftStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
	Events      []OutboxInsert
}

// UndoPickParams carries the full effect of one validated undo.
// PrevPick guards the rewind the same way RecordPickParams does.
type UndoPickParams struct {
	DraftID        uuid.UUID
	PickID         uuid.UUID
	PrevPick       int
	NewRound       int
	NewPick        int
	NewStatus      models.DraftStatus
	ClearStartedAt bool
	Events         []OutboxInsert
}
