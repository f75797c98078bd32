package recommendations

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/models"
)

func TestFallbackRanksFiveLowestADP(t *testing.T) {
	// Six ranked players handed over out of order.
	pool := []models.Player{
		pooledPlayer("Player Four", "WR", "DAL", 4),
		pooledPlayer("Player One", "RB", "SF", 1),
		pooledPlayer("Player Six", "TE", "KC", 6),
		pooledPlayer("Player Two", "WR", "MIN", 2),
		pooledPlayer("Player Five", "RB", "NYJ", 5),
		pooledPlayer("Player Three", "QB", "BUF", 3),
	}

	recs := fallbackRecommendations(pool)
	require.Len(t, recs, 5)

	wantNames := []string{"Player One", "Player Two", "Player Three", "Player Four", "Player Five"}
	wantScores := []float64{80, 75, 70, 65, 60}
	for i, rec := range recs {
		assert.Equal(t, wantNames[i], rec.PlayerName)
		assert.Equal(t, wantScores[i], rec.Score)
	}

	assert.Equal(t, []models.RecommendationTag{models.TagBestAvailable}, recs[0].Tags)
	assert.Equal(t, "Highest ranked player still available.", recs[0].Reasoning)
	for _, rec := range recs[1:] {
		assert.Equal(t, []models.RecommendationTag{models.TagValuePick}, rec.Tags)
	}
	assert.Equal(t, "Best value on the board at ADP 2.", recs[1].Reasoning)
}

func TestFallbackSkipsUnrankedPlayers(t *testing.T) {
	unranked := models.Player{ID: uuid.New(), FullName: "No Rank", Team: "FA", Position: "WR"}
	pool := []models.Player{
		unranked,
		pooledPlayer("Ranked Low", "RB", "SF", 40),
		pooledPlayer("Ranked High", "WR", "DAL", 12),
	}

	recs := fallbackRecommendations(pool)
	require.Len(t, recs, 2)
	assert.Equal(t, "Ranked High", recs[0].PlayerName)
	assert.Equal(t, "Ranked Low", recs[1].PlayerName)
}

func TestFallbackBreaksADPTiesByName(t *testing.T) {
	pool := []models.Player{
		pooledPlayer("Zeke Walker", "RB", "DAL", 10),
		pooledPlayer("Aaron Banks", "WR", "SF", 10),
	}

	recs := fallbackRecommendations(pool)
	require.Len(t, recs, 2)
	assert.Equal(t, "Aaron Banks", recs[0].PlayerName)
	assert.Equal(t, "Zeke Walker", recs[1].PlayerName)
}

func TestFallbackEmptyPoolYieldsNoRecommendations(t *testing.T) {
	assert.Empty(t, fallbackRecommendations(nil))
	assert.Empty(t, fallbackRecommendations([]models.Player{
		{ID: uuid.New(), FullName: "No Rank", Team: "FA", Position: "WR"},
	}))
}
