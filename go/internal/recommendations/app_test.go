package recommendations

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/draft"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// fakeDraftReader serves a single draft and its canned pool, roster and
// pick history.
type fakeDraftReader struct {
	draft     *models.Draft
	picks     []draft.PickWithPlayer
	available []models.Player
	roster    []models.Player
}

func (f *fakeDraftReader) GetDraft(_ context.Context, id uuid.UUID) (*models.Draft, error) {
	if f.draft == nil || f.draft.ID != id {
		return nil, draft.ErrDraftNotFound
	}
	out := *f.draft
	return &out, nil
}

func (f *fakeDraftReader) GetDraftPicks(_ context.Context, _ uuid.UUID) ([]draft.PickWithPlayer, error) {
	return f.picks, nil
}

func (f *fakeDraftReader) GetAvailablePlayers(_ context.Context, _ uuid.UUID) ([]models.Player, error) {
	return f.available, nil
}

func (f *fakeDraftReader) GetUserRoster(_ context.Context, _ uuid.UUID) ([]models.Player, error) {
	return f.roster, nil
}

type stubProvider struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (p *stubProvider) Generate(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	p.calls++
	p.prompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

// blockingProvider waits out its context, standing in for a hung provider.
type blockingProvider struct {
	calls int
}

func (p *blockingProvider) Generate(ctx context.Context, _ string, _ int, _ float64) (string, error) {
	p.calls++
	<-ctx.Done()
	return "", ctx.Err()
}

type spyCache struct {
	cached  *Response
	sets    int
	setPick int
}

func (c *spyCache) Get(_ context.Context, _ uuid.UUID, _ int) (*Response, bool) {
	if c.cached != nil {
		return c.cached, true
	}
	return nil, false
}

func (c *spyCache) Set(_ context.Context, _ uuid.UUID, currentPick int, resp *Response) {
	c.sets++
	c.setPick = currentPick
	c.cached = resp
}

func testDraft() *models.Draft {
	return &models.Draft{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Sport:         models.SportNFL,
		DraftType:     models.DraftTypeSnake,
		ScoringType:   models.ScoringTypePPR,
		NumTeams:      12,
		DraftPosition: 5,
		RosterSize:    15,
		CurrentRound:  2,
		CurrentPick:   13,
		Status:        models.DraftStatusInProgress,
	}
}

func testPool() []models.Player {
	return []models.Player{
		pooledPlayer("Ja'Marr Chase", "WR", "CIN", 1),
		pooledPlayer("Bijan Robinson", "RB", "ATL", 2),
		pooledPlayer("CeeDee Lamb", "WR", "DAL", 3),
		pooledPlayer("Justin Jefferson", "WR", "MIN", 4),
		pooledPlayer("Jahmyr Gibbs", "RB", "DET", 9),
		pooledPlayer("Brock Bowers", "TE", "LV", 22),
		{ID: uuid.New(), Sport: models.SportNFL, FullName: "Tyler Boyd", Team: "TEN", Position: "WR"},
	}
}

func TestGetRecommendationsFromProvider(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	provider := &stubProvider{response: `{
		"strategy": "Lock in a workhorse back early.",
		"recommendations": [
			{"name": "Bijan Robinson", "position": "RB", "team": "ATL", "reasoning": "Elite volume.", "score": 95, "tags": ["best available"]},
			{"name": "Jahmyr Gibbs", "position": "RB", "team": "DET", "reasoning": "Explosive in space.", "score": 88, "tags": ["positional need", "franchise-tag"]}
		]
	}`}
	cache := &spyCache{}
	app := NewApp(reader, provider, cache, DefaultConfig())

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Equal(t, d.ID, resp.DraftID)
	assert.Equal(t, 13, resp.CurrentPick)
	assert.Equal(t, "Lock in a workhorse back early.", resp.Strategy)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Bijan Robinson", resp.Recommendations[0].PlayerName)
	assert.Equal(t, 95.0, resp.Recommendations[0].Score)
	assert.Equal(t, []models.RecommendationTag{models.TagPositionalNeed}, resp.Recommendations[1].Tags,
		"unknown tags filtered out")
	assert.Contains(t, resp.Analysis.Needs, "RB")

	assert.Contains(t, provider.prompt, "AVAILABLE PLAYERS")
	assert.Contains(t, provider.prompt, "On the clock: round 2, pick 13 of 180")
	assert.Contains(t, provider.prompt, "snake draft, ppr scoring")
	assert.Contains(t, provider.prompt, "Tyler Boyd | WR | TEN | ADP -")

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 13, cache.setPick)
}

func TestGetRecommendationsServedFromCache(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	provider := &stubProvider{response: "{}"}
	cached := &Response{DraftID: d.ID, CurrentPick: 13, Strategy: "cached"}
	app := NewApp(reader, provider, &spyCache{cached: cached}, DefaultConfig())

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Zero(t, provider.calls)
}

func TestGetRecommendationsProviderFailureFallsBack(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	provider := &stubProvider{err: errors.New("circuit breaker is open")}
	cache := &spyCache{}
	app := NewApp(reader, provider, cache, DefaultConfig())

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err, "provider trouble is never the caller's problem")
	assert.Equal(t, fallbackStrategy, resp.Strategy)
	require.Len(t, resp.Recommendations, 5)

	wantNames := []string{"Ja'Marr Chase", "Bijan Robinson", "CeeDee Lamb", "Justin Jefferson", "Jahmyr Gibbs"}
	for i, rec := range resp.Recommendations {
		assert.Equal(t, wantNames[i], rec.PlayerName)
		assert.Equal(t, float64(80-5*i), rec.Score)
	}
	assert.Equal(t, []models.RecommendationTag{models.TagBestAvailable}, resp.Recommendations[0].Tags)
	assert.Equal(t, "Highest ranked player still available.", resp.Recommendations[0].Reasoning)
	assert.Equal(t, []models.RecommendationTag{models.TagValuePick}, resp.Recommendations[1].Tags)
	assert.Equal(t, "Best value on the board at ADP 2.", resp.Recommendations[1].Reasoning)

	assert.Zero(t, cache.sets, "fallback responses are not cached")
}

func TestGetRecommendationsUnusableResponseFallsBack(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	provider := &stubProvider{response: "I am sorry, I cannot pick players for you."}
	app := NewApp(reader, provider, nil, DefaultConfig())

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Equal(t, fallbackStrategy, resp.Strategy)
	assert.Len(t, resp.Recommendations, 5)
}

func TestGetRecommendationsNoProviderConfigured(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	app := NewApp(reader, nil, nil, DefaultConfig())

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Equal(t, fallbackStrategy, resp.Strategy)
	require.Len(t, resp.Recommendations, 5)
	assert.Equal(t, "Ja'Marr Chase", resp.Recommendations[0].PlayerName)
}

func TestGetRecommendationsProviderTimeoutFallsBack(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	provider := &blockingProvider{}
	cfg := Config{MaxTokens: 512, Temperature: 0.5, Timeout: 10 * time.Millisecond}
	app := NewApp(reader, provider, nil, cfg)

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, fallbackStrategy, resp.Strategy)
	assert.Len(t, resp.Recommendations, 5)
}

func TestGetRecommendationsCallerCancellation(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: testPool()}
	app := NewApp(reader, &blockingProvider{}, nil, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := app.GetRecommendations(ctx, d.ID)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp, "a caller who walked away gets no fallback")
}

func TestGetRecommendationsRejectsEmptyPool(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d}
	app := NewApp(reader, nil, nil, DefaultConfig())

	_, err := app.GetRecommendations(context.Background(), d.ID)

	require.ErrorIs(t, err, draft.ErrInvalidInput)
}

func TestGetRecommendationsDraftNotFound(t *testing.T) {
	reader := &fakeDraftReader{}
	app := NewApp(reader, nil, nil, DefaultConfig())

	_, err := app.GetRecommendations(context.Background(), uuid.New())

	require.ErrorIs(t, err, draft.ErrDraftNotFound)
}

func TestGetRecommendationsAllPlayersUnranked(t *testing.T) {
	d := testDraft()
	reader := &fakeDraftReader{draft: d, available: []models.Player{
		{ID: uuid.New(), Sport: models.SportNFL, FullName: "Tyler Boyd", Team: "TEN", Position: "WR"},
		{ID: uuid.New(), Sport: models.SportNFL, FullName: "Hunter Henry", Team: "NE", Position: "TE"},
	}}
	app := NewApp(reader, nil, nil, DefaultConfig())

	resp, err := app.GetRecommendations(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations, "players without ADP cannot be ranked")
	assert.Equal(t, fallbackStrategy, resp.Strategy)
	assert.NotEmpty(t, resp.Analysis.Needs, "analysis is still returned")
}

func TestTopCandidatesOrdersAndCaps(t *testing.T) {
	pool := make([]models.Player, 0, candidateLimit+6)
	for i := candidateLimit + 3; i >= 1; i-- {
		pool = append(pool, pooledPlayer(fmt.Sprintf("Player %03d", i), "WR", "FA", i))
	}
	pool = append(pool,
		models.Player{ID: uuid.New(), FullName: "Unranked A", Position: "TE"},
		models.Player{ID: uuid.New(), FullName: "Unranked B", Position: "TE"},
	)

	candidates := topCandidates(pool)

	require.Len(t, candidates, candidateLimit)
	assert.Equal(t, "Player 001", candidates[0].FullName)
	assert.Equal(t, 1, *candidates[0].ADP)
	for i := 1; i < len(candidates); i++ {
		require.NotNil(t, candidates[i].ADP)
		assert.LessOrEqual(t, *candidates[i-1].ADP, *candidates[i].ADP)
	}
}

func TestTopCandidatesKeepsUnrankedLast(t *testing.T) {
	pool := []models.Player{
		{ID: uuid.New(), FullName: "Unranked B", Position: "TE"},
		pooledPlayer("Jahmyr Gibbs", "RB", "DET", 9),
		{ID: uuid.New(), FullName: "Unranked A", Position: "TE"},
		pooledPlayer("Bijan Robinson", "RB", "ATL", 2),
	}

	candidates := topCandidates(pool)

	require.Len(t, candidates, 4)
	assert.Equal(t, "Bijan Robinson", candidates[0].FullName)
	assert.Equal(t, "Jahmyr Gibbs", candidates[1].FullName)
	assert.Equal(t, "Unranked A", candidates[2].FullName, "unranked players sort by name at the end")
	assert.Equal(t, "Unranked B", candidates[3].FullName)
}
