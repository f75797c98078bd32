package recommendations

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// Response carries everything the client needs to weigh the current pick.
type Response struct {
	DraftID         uuid.UUID                     `json:"draft_id"`
	CurrentPick     int                           `json:"current_pick"`
	Recommendations []models.PlayerRecommendation `json:"recommendations"`
	Strategy        string                        `json:"strategy"`
	Analysis        models.RosterAnalysis         `json:"analysis"`
}

// Config bounds the provider call.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the provider call bounds used when the config
// file does not override them.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     10 * time.Second,
	}
}
