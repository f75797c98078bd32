package models

// RosterAnalysis summarizes a roster's positional strengths and needs
// against the ideal composition for the draft's sport.
type RosterAnalysis struct {
	Strengths []string `json:"strengths"`
	Needs     []string `json:"needs"`
}
