package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/draftroom/go/internal/models"
)

func playersAt(position string, names ...string) []models.Player {
	players := make([]models.Player, 0, len(names))
	for _, name := range names {
		players = append(players, models.Player{FullName: name, Position: position})
	}
	return players
}

func TestAnalyzeFlagsStrengthsAndNeeds(t *testing.T) {
	ideal := map[string]int{"QB": 2, "RB": 5, "WR": 5, "TE": 2}

	roster := playersAt("QB", "Josh Allen", "Jalen Hurts")
	roster = append(roster, playersAt("RB", "Saquon Barkley")...)
	roster = append(roster, playersAt("WR", "Justin Jefferson", "CeeDee Lamb", "Amon-Ra St. Brown", "Puka Nacua")...)

	analysis := Analyze(roster, ideal)

	assert.Equal(t, []string{"QB"}, analysis.Strengths)
	// RB is four short, TE two short. WR is one short which is fine.
	assert.Equal(t, []string{"RB", "TE"}, analysis.Needs)
}

func TestAnalyzeOneShortIsNotANeed(t *testing.T) {
	ideal := map[string]int{"QB": 2}

	analysis := Analyze(playersAt("QB", "Lamar Jackson"), ideal)

	assert.Empty(t, analysis.Strengths)
	assert.Equal(t, []string{BalancedSentinel}, analysis.Needs)
}

func TestAnalyzeBalancedRoster(t *testing.T) {
	ideal := map[string]int{"QB": 1, "RB": 2}

	roster := playersAt("QB", "Joe Burrow")
	roster = append(roster, playersAt("RB", "Bijan Robinson", "Jahmyr Gibbs")...)

	analysis := Analyze(roster, ideal)

	assert.Equal(t, []string{"QB", "RB"}, analysis.Strengths)
	assert.Equal(t, []string{BalancedSentinel}, analysis.Needs)
}

func TestAnalyzeEmptyRoster(t *testing.T) {
	ideal := map[string]int{"QB": 2, "RB": 5, "K": 1}

	analysis := Analyze(nil, ideal)

	assert.Empty(t, analysis.Strengths)
	// K is only one short at zero, QB and RB are meaningfully short.
	assert.Equal(t, []string{"QB", "RB"}, analysis.Needs)
}

func TestAnalyzeIgnoresPositionsOutsideIdeal(t *testing.T) {
	ideal := map[string]int{"QB": 1}

	roster := playersAt("QB", "Patrick Mahomes")
	roster = append(roster, playersAt("LS", "Josh Harris")...)

	analysis := Analyze(roster, ideal)

	assert.Equal(t, []string{"QB"}, analysis.Strengths)
	assert.Equal(t, []string{BalancedSentinel}, analysis.Needs)
}
