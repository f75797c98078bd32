package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents an entry in the draftable player catalog.
// The catalog is read-only to the draft engine, an external feed keeps
// it current.
type Player struct {
	ID                uuid.UUID `json:"id"`
	Sport             Sport     `json:"sport"`
	FullName          string    `json:"full_name"`
	Team              string    `json:"team"`     // team abbreviation, e.g. 'KC'
	Position          string    `json:"position"` // primary position, e.g. 'QB'
	EligiblePositions []string  `json:"eligible_positions"`
	ADP               *int      `json:"adp,omitempty"` // average draft position rank, lower drafts earlier
	CreatedAt         time.Time `json:"created_at"`
}
