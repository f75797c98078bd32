package recommendations

import (
	"fmt"
	"sort"

	"github.com/mcdev12/draftroom/go/internal/models"
)

const fallbackStrategy = "Best player available. Draft the highest ranked player on the board and adjust for roster needs in later rounds."

// fallbackRecommendations ranks the available pool by ADP when the provider
// cannot. Players without an ADP are unrankable and left out, which can leave
// fewer than five suggestions, or none late in a draft.
func fallbackRecommendations(available []models.Player) []models.PlayerRecommendation {
	ranked := make([]models.Player, 0, len(available))
	for _, p := range available {
		if p.ADP != nil {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if *ranked[i].ADP != *ranked[j].ADP {
			return *ranked[i].ADP < *ranked[j].ADP
		}
		return ranked[i].FullName < ranked[j].FullName
	})

	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	recs := make([]models.PlayerRecommendation, 0, len(ranked))
	for i, p := range ranked {
		rec := models.PlayerRecommendation{
			PlayerID:   p.ID,
			PlayerName: p.FullName,
			Position:   p.Position,
			Team:       p.Team,
			Score:      float64(80 - 5*i),
		}
		if i == 0 {
			rec.Reasoning = "Highest ranked player still available."
			rec.Tags = []models.RecommendationTag{models.TagBestAvailable}
		} else {
			rec.Reasoning = fmt.Sprintf("Best value on the board at ADP %d.", *p.ADP)
			rec.Tags = []models.RecommendationTag{models.TagValuePick}
		}
		recs = append(recs, rec)
	}
	return recs
}
