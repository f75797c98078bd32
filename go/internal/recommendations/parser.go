package recommendations

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// providerItem is one recommendation as the provider names it. The name
// and team are the provider's words and still need resolving against the
// available pool.
type providerItem struct {
	Name      string   `json:"name"`
	Position  string   `json:"position"`
	Team      string   `json:"team"`
	Reasoning string   `json:"reasoning"`
	Score     float64  `json:"score"`
	Tags      []string `json:"tags"`
}

type providerEnvelope struct {
	Strategy        string         `json:"strategy"`
	Recommendations []providerItem `json:"recommendations"`
}

// parseProviderResponse decodes untrusted provider output. It accepts the
// documented object envelope or a bare recommendation array, anything
// else yields zero items and the caller falls back.
func parseProviderResponse(raw string) ([]providerItem, string) {
	text := stripCodeFences(raw)

	var envelope providerEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err == nil && len(envelope.Recommendations) > 0 {
		return usableItems(envelope.Recommendations), strings.TrimSpace(envelope.Strategy)
	}

	var items []providerItem
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return usableItems(items), ""
	}

	return nil, ""
}

// stripCodeFences removes a surrounding markdown fence, providers add one
// even when told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// usableItems drops items that break the contract, a blank name or a
// score outside 0-100. Unknown tags are filtered, not fatal.
func usableItems(items []providerItem) []providerItem {
	out := make([]providerItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		if item.Score < 0 || item.Score > 100 {
			continue
		}
		item.Tags = knownTags(item.Tags)
		out = append(out, item)
	}
	return out
}

func knownTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if models.ValidTag(models.RecommendationTag(normalized)) {
			out = append(out, normalized)
		}
	}
	return out
}

// resolveRecommendations maps provider items onto real players from the
// available pool. Matching runs in tiers, exact name+team first, then
// exact name, then case-insensitive substring. A substring hitting two or
// more players is ambiguous and the item is dropped silently, as is an
// item whose player was already claimed. Identity fields always come from
// the resolved player, never from the provider's text.
func resolveRecommendations(items []providerItem, available []models.Player) []models.PlayerRecommendation {
	recs := make([]models.PlayerRecommendation, 0, len(items))
	claimed := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		player := resolvePlayer(item, available)
		if player == nil || claimed[player.ID] {
			continue
		}
		claimed[player.ID] = true

		tags := make([]models.RecommendationTag, 0, len(item.Tags))
		for _, tag := range item.Tags {
			tags = append(tags, models.RecommendationTag(tag))
		}

		recs = append(recs, models.PlayerRecommendation{
			PlayerID:   player.ID,
			PlayerName: player.FullName,
			Position:   player.Position,
			Team:       player.Team,
			Reasoning:  strings.TrimSpace(item.Reasoning),
			Score:      item.Score,
			Tags:       tags,
		})
	}
	return recs
}

func resolvePlayer(item providerItem, available []models.Player) *models.Player {
	name := strings.ToLower(strings.TrimSpace(item.Name))
	team := strings.ToLower(strings.TrimSpace(item.Team))

	if team != "" {
		for i := range available {
			if strings.ToLower(available[i].FullName) == name && strings.ToLower(available[i].Team) == team {
				return &available[i]
			}
		}
	}

	for i := range available {
		if strings.ToLower(available[i].FullName) == name {
			return &available[i]
		}
	}

	var match *models.Player
	for i := range available {
		if strings.Contains(strings.ToLower(available[i].FullName), name) {
			if match != nil {
				return nil
			}
			match = &available[i]
		}
	}
	return match
}
