package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftPick represents a single recorded pick in a draft.
type DraftPick struct {
	ID          uuid.UUID `json:"id"`
	DraftID     uuid.UUID `json:"draft_id"`
	PlayerID    uuid.UUID `json:"player_id"`
	TeamNumber  int       `json:"team_number"`
	Round       int       `json:"round"`
	PickNumber  int       `json:"pick_number"`   // pick number overall, 1-based
	PickInRound int       `json:"pick_in_round"` // pick number in the round
	IsUserPick  bool      `json:"is_user_pick"`
	CreatedAt   time.Time `json:"created_at"`
}
