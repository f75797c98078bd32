package recommendations

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/draft"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/roster"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

const (
	// candidateLimit caps how many available players the prompt lists.
	candidateLimit = 30
	// maxRecommendations caps how many suggestions a response carries.
	maxRecommendations = 5

	defaultStrategy = "Take the strongest player from the recommendations below."
)

// DraftReader defines what the recommendation engine needs from the draft app.
type DraftReader interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	GetDraftPicks(ctx context.Context, draftID uuid.UUID) ([]draft.PickWithPlayer, error)
	GetAvailablePlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error)
	GetUserRoster(ctx context.Context, draftID uuid.UUID) ([]models.Player, error)
}

// Provider generates draft advice from a rendered prompt. Implementations
// wrap an LLM API and are expected to fail fast when unhealthy.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// ResponseCache stores computed responses keyed by draft and pick so
// repeated requests between picks do not burn provider calls.
type ResponseCache interface {
	Get(ctx context.Context, draftID uuid.UUID, currentPick int) (*Response, bool)
	Set(ctx context.Context, draftID uuid.UUID, currentPick int, resp *Response)
}

// App produces pick recommendations for a draft. It never mutates draft
// state, and provider trouble degrades to an ADP ranking instead of an
// error. Both provider and cache may be nil.
type App struct {
	drafts   DraftReader
	provider Provider
	cache    ResponseCache
	cfg      Config
}

func NewApp(drafts DraftReader, provider Provider, cache ResponseCache, cfg Config) *App {
	return &App{
		drafts:   drafts,
		provider: provider,
		cache:    cache,
		cfg:      cfg,
	}
}

// GetRecommendations suggests players for the draft's current pick.
func (a *App) GetRecommendations(ctx context.Context, draftID uuid.UUID) (*Response, error) {
	d, err := a.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	if a.cache != nil {
		if cached, ok := a.cache.Get(ctx, draftID, d.CurrentPick); ok {
			return cached, nil
		}
	}

	available, err := a.drafts.GetAvailablePlayers(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get available players: %w", err)
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: no available players to recommend from", draft.ErrInvalidInput)
	}

	userRoster, err := a.drafts.GetUserRoster(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roster: %w", err)
	}

	picks, err := a.drafts.GetDraftPicks(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft picks: %w", err)
	}

	profile, err := base.GetProfile(d.Sport)
	if err != nil {
		return nil, fmt.Errorf("failed to get sport profile: %w", err)
	}
	analysis := roster.Analyze(userRoster, profile.IdealRoster())

	resp := &Response{
		DraftID:     d.ID,
		CurrentPick: d.CurrentPick,
		Analysis:    analysis,
	}

	if a.provider == nil {
		resp.Recommendations = fallbackRecommendations(available)
		resp.Strategy = fallbackStrategy
		return resp, nil
	}

	candidates := topCandidates(available)
	prompt := buildPrompt(d, userRoster, analysis, picks, candidates)

	genCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	raw, err := a.provider.Generate(genCtx, prompt, a.cfg.MaxTokens, a.cfg.Temperature)
	if err != nil {
		// The caller walking away is not a provider problem, surface it.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().
			Err(err).
			Str("draft_id", draftID.String()).
			Msg("recommendation provider unavailable, falling back to ADP ranking")
		resp.Recommendations = fallbackRecommendations(available)
		resp.Strategy = fallbackStrategy
		return resp, nil
	}

	items, strategy := parseProviderResponse(raw)
	recs := resolveRecommendations(usableItems(items), available)
	if len(recs) == 0 {
		log.Warn().
			Str("draft_id", draftID.String()).
			Msg("recommendation response unusable, falling back to ADP ranking")
		resp.Recommendations = fallbackRecommendations(available)
		resp.Strategy = fallbackStrategy
		return resp, nil
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	if strategy == "" {
		strategy = defaultStrategy
	}

	resp.Recommendations = recs
	resp.Strategy = strategy

	// Only provider-backed responses are worth caching, the fallback is
	// cheap to recompute.
	if a.cache != nil {
		a.cache.Set(ctx, draftID, d.CurrentPick, resp)
	}
	return resp, nil
}

// topCandidates orders the pool by ADP, best first, unranked players at
// the end, and caps it at candidateLimit for the prompt.
func topCandidates(available []models.Player) []models.Player {
	candidates := make([]models.Player, len(available))
	copy(candidates, available)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].ADP, candidates[j].ADP
		switch {
		case a == nil && b == nil:
			return candidates[i].FullName < candidates[j].FullName
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return candidates[i].FullName < candidates[j].FullName
		}
	})
	if len(candidates) > candidateLimit {
		candidates = candidates[:candidateLimit]
	}
	return candidates
}
