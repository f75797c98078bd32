package recommendations

import (
	"fmt"
	"strings"

	"github.com/mcdev12/draftroom/go/internal/draft"
	"github.com/mcdev12/draftroom/go/internal/models"
)

const recentPickWindow = 5

// buildPrompt renders the draft situation for the provider. Everything the
// model is allowed to suggest is listed under AVAILABLE PLAYERS, and the
// instructions pin the response to bare JSON so the parser has a chance.
func buildPrompt(d *models.Draft, roster []models.Player, analysis models.RosterAnalysis, recent []draft.PickWithPlayer, candidates []models.Player) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a fantasy %s draft assistant. Recommend players for my next pick.\n\n", strings.ToUpper(string(d.Sport)))

	fmt.Fprintf(&b, "DRAFT\n")
	fmt.Fprintf(&b, "Format: %s draft, %s scoring\n", d.DraftType, d.ScoringType)
	fmt.Fprintf(&b, "Teams: %d, I draft from seat %d\n", d.NumTeams, d.DraftPosition)
	fmt.Fprintf(&b, "On the clock: round %d, pick %d of %d\n\n", d.CurrentRound, d.CurrentPick, d.TotalPicks())

	fmt.Fprintf(&b, "MY ROSTER\n")
	if len(roster) == 0 {
		fmt.Fprintf(&b, "Empty, this is my first pick.\n")
	}
	for _, p := range roster {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", p.FullName, p.Position, p.Team)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "ROSTER ANALYSIS\n")
	fmt.Fprintf(&b, "Strengths: %s\n", joinOrNone(analysis.Strengths))
	fmt.Fprintf(&b, "Needs: %s\n\n", joinOrNone(analysis.Needs))

	if len(recent) > 0 {
		fmt.Fprintf(&b, "RECENT PICKS\n")
		start := len(recent) - recentPickWindow
		if start < 0 {
			start = 0
		}
		for _, pick := range recent[start:] {
			fmt.Fprintf(&b, "- Pick %d: %s (%s, %s) by team %d\n",
				pick.PickNumber, pick.PlayerName, pick.PlayerPosition, pick.PlayerTeam, pick.TeamNumber)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "AVAILABLE PLAYERS (best %d by ADP)\n", len(candidates))
	for _, p := range candidates {
		fmt.Fprintf(&b, "- %s | %s | %s | ADP %s\n", p.FullName, p.Position, p.Team, formatADP(p.ADP))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "INSTRUCTIONS\n")
	fmt.Fprintf(&b, "Recommend up to %d players for my next pick, strongest first. Only use players from AVAILABLE PLAYERS.\n", maxRecommendations)
	fmt.Fprintf(&b, "Respond with JSON only, no markdown fences, no commentary, in this shape:\n")
	fmt.Fprintf(&b, `{"strategy": "one or two sentences on how to approach this pick", "recommendations": [{"name": "player name", "position": "POS", "team": "TEAM", "reasoning": "one sentence", "score": 90, "tags": ["value pick"]}]}`)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Scores range 0-100, higher is a stronger suggestion. Valid tags: %s.\n", validTagList())

	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func formatADP(adp *int) string {
	if adp == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *adp)
}

func validTagList() string {
	tags := []models.RecommendationTag{
		models.TagBestAvailable,
		models.TagPositionalNeed,
		models.TagValuePick,
		models.TagSleeper,
		models.TagSafeFloor,
		models.TagHighCeiling,
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ", ")
}
