package roster

import (
	"sort"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// BalancedSentinel is emitted as the only needs entry when no position is
// meaningfully short.
const BalancedSentinel = "roster is balanced"

// Analyze counts a roster by primary position and compares the counts to
// the ideal composition for the sport. A position at or above its ideal
// is a strength. A position more than one short is a need, running
// exactly one short is acceptable and stays quiet so early rounds are
// not all warnings. Pure function, safe to call concurrently.
func Analyze(roster []models.Player, ideal map[string]int) models.RosterAnalysis {
	counts := make(map[string]int, len(ideal))
	for _, p := range roster {
		counts[p.Position]++
	}

	// Walk positions in sorted order so callers get stable output
	positions := make([]string, 0, len(ideal))
	for position := range ideal {
		positions = append(positions, position)
	}
	sort.Strings(positions)

	var analysis models.RosterAnalysis
	for _, position := range positions {
		actual := counts[position]
		switch {
		case actual >= ideal[position]:
			analysis.Strengths = append(analysis.Strengths, position)
		case actual < ideal[position]-1:
			analysis.Needs = append(analysis.Needs, position)
		}
	}

	if len(analysis.Needs) == 0 {
		analysis.Needs = []string{BalancedSentinel}
	}
	return analysis
}
