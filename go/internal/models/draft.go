package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Sport identifies which player catalog a draft pulls from.
type Sport string

const (
	SportNFL Sport = "nfl"
	SportNBA Sport = "nba"
	SportMLB Sport = "mlb"
)

// DraftType defines how pick order is determined.
type DraftType string

const (
	DraftTypeSnake   DraftType = "snake"
	DraftTypeAuction DraftType = "auction"
	DraftTypeLinear  DraftType = "linear"
)

// ScoringType defines the scoring format the draft is played under.
// Which values are valid depends on the sport, see the sports profiles.
type ScoringType string

const (
	ScoringTypeStandard   ScoringType = "standard"
	ScoringTypePPR        ScoringType = "ppr"
	ScoringTypeHalfPPR    ScoringType = "half_ppr"
	ScoringTypePoints     ScoringType = "points"
	ScoringTypeCategories ScoringType = "categories"
	ScoringTypeRoto       ScoringType = "roto"
)

// DraftStatus defines the lifecycle state of a draft.
type DraftStatus string

const (
	DraftStatusSetup      DraftStatus = "setup"
	DraftStatusInProgress DraftStatus = "in_progress"
	DraftStatusCompleted  DraftStatus = "completed"
	DraftStatusAbandoned  DraftStatus = "abandoned"
)

// Draft represents one assisted draft session. The user drafts from seat
// DraftPosition and records every team's picks as the real draft unfolds.
// CurrentPick is always the next overall pick to be made.
type Draft struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Sport         Sport           `json:"sport"`
	DraftType     DraftType       `json:"draft_type"`
	ScoringType   ScoringType     `json:"scoring_type"`
	NumTeams      int             `json:"num_teams"`
	DraftPosition int             `json:"draft_position"`
	RosterSize    int             `json:"roster_size"`
	CurrentRound  int             `json:"current_round"`
	CurrentPick   int             `json:"current_pick"`
	Status        DraftStatus     `json:"status"`
	Settings      json.RawMessage `json:"settings,omitempty"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TotalPicks returns how many picks complete the draft.
func (d *Draft) TotalPicks() int {
	return d.NumTeams * d.RosterSize
}
