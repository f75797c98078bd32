package models

import "github.com/google/uuid"

// RecommendationTag labels why a player is being suggested.
type RecommendationTag string

const (
	TagBestAvailable  RecommendationTag = "best available"
	TagPositionalNeed RecommendationTag = "positional need"
	TagValuePick      RecommendationTag = "value pick"
	TagSleeper        RecommendationTag = "sleeper"
	TagSafeFloor      RecommendationTag = "safe floor"
	TagHighCeiling    RecommendationTag = "high ceiling"
)

// ValidTag reports whether tag belongs to the known tag vocabulary.
func ValidTag(tag RecommendationTag) bool {
	switch tag {
	case TagBestAvailable, TagPositionalNeed, TagValuePick, TagSleeper, TagSafeFloor, TagHighCeiling:
		return true
	default:
		return false
	}
}

// PlayerRecommendation is a single ranked suggestion for the current pick.
// It always refers to a player that is still available in the draft.
type PlayerRecommendation struct {
	PlayerID   uuid.UUID           `json:"player_id"`
	PlayerName string              `json:"player_name"`
	Position   string              `json:"position"`
	Team       string              `json:"team"`
	Reasoning  string              `json:"reasoning"`
	Score      float64             `json:"score"` // 0-100, higher is a stronger suggestion
	Tags       []RecommendationTag `json:"tags"`
}
