package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/player"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

// DraftRepository defines what the app layer needs from the repository
type DraftRepository interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	AbandonDraft(ctx context.Context, id uuid.UUID, event OutboxInsert) (*models.Draft, error)
	ListIdleDrafts(ctx context.Context, idleFor time.Duration) ([]uuid.UUID, error)
	GetDraftPicks(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error)
	GetDraftPicksWithPlayers(ctx context.Context, draftID uuid.UUID) ([]PickWithPlayer, error)
	GetLastPick(ctx context.Context, draftID uuid.UUID) (*models.DraftPick, error)
	HasDraftPick(ctx context.Context, draftID, playerID uuid.UUID) (bool, error)
	ListAvailablePlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error)
	ListRosterPlayers(ctx context.Context, draftID uuid.UUID, teamNumber int) ([]models.Player, error)
	RecordPick(ctx context.Context, params RecordPickParams) error
	UndoPick(ctx context.Context, params UndoPickParams) error
}

// PlayerRepository defines what the draft app layer needs from the
// player repository for validation
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// App handles draft business logic
type App struct {
	repo    DraftRepository
	players PlayerRepository
	clock   clockwork.Clock
}

// NewApp creates a new draft App
func NewApp(repo DraftRepository, players PlayerRepository, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		players: players,
		clock:   clock,
	}
}

// CreateDraft creates a new draft with validation
func (a *App) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	if err := a.validateCreateDraftRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	draft, err := a.repo.CreateDraft(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	log.Info().
		Str("draft_id", draft.ID.String()).
		Str("sport", string(draft.Sport)).
		Str("draft_type", string(draft.DraftType)).
		Int("num_teams", draft.NumTeams).
		Msg("created draft")
	return draft, nil
}

// GetDraft retrieves a draft by ID
func (a *App) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// ListDraftsByUser retrieves all drafts owned by a user
func (a *App) ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]models.Draft, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	drafts, err := a.repo.ListDraftsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// GetDraftPicks retrieves all picks for a draft with resolved player info
func (a *App) GetDraftPicks(ctx context.Context, draftID uuid.UUID) ([]PickWithPlayer, error) {
	if _, err := a.repo.GetDraft(ctx, draftID); err != nil {
		return nil, err
	}
	picks, err := a.repo.GetDraftPicksWithPlayers(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft picks: %w", err)
	}
	return picks, nil
}

// GetAvailablePlayers returns the sport's players not yet picked in the
// draft, sorted by ADP with unranked players last
func (a *App) GetAvailablePlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error) {
	if _, err := a.repo.GetDraft(ctx, draftID); err != nil {
		return nil, err
	}
	players, err := a.repo.ListAvailablePlayers(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	return players, nil
}

// GetUserRoster returns the players drafted by the user's own seat
func (a *App) GetUserRoster(ctx context.Context, draftID uuid.UUID) ([]models.Player, error) {
	draft, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	roster, err := a.repo.ListRosterPlayers(ctx, draftID, draft.DraftPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster players: %w", err)
	}
	return roster, nil
}

// MakePick records the player taken at the draft's current pick. The
// insert, the currentPick advance and any status change land in one
// transaction, concurrent submissions for the same slot or player
// resolve to exactly one winner.
func (a *App) MakePick(ctx context.Context, req MakePickRequest) (*models.DraftPick, error) {
	if err := a.validateMakePickRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	switch draft.Status {
	case models.DraftStatusCompleted:
		return nil, ErrDraftComplete
	case models.DraftStatusAbandoned:
		return nil, ErrDraftAbandoned
	}

	if req.TeamNumber > draft.NumTeams {
		return nil, fmt.Errorf("%w: team_number %d exceeds num_teams %d", ErrInvalidInput, req.TeamNumber, draft.NumTeams)
	}

	p, err := a.getSportPlayer(ctx, req.PlayerID, draft.Sport)
	if err != nil {
		return nil, err
	}

	taken, err := a.repo.HasDraftPick(ctx, req.DraftID, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing pick: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDrafted, p.FullName)
	}

	if req.PickNumber != draft.CurrentPick {
		return nil, fmt.Errorf("%w: pick %d submitted but draft is at pick %d", ErrConflict, req.PickNumber, draft.CurrentPick)
	}

	order, err := orderFor(draft.DraftType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	slot := order.SlotFor(req.PickNumber, draft.NumTeams)
	if order.FixedOrder() && req.TeamNumber != slot.TeamNumber {
		return nil, fmt.Errorf("%w: seat %d is on the clock for pick %d", ErrOutOfTurn, slot.TeamNumber, req.PickNumber)
	}

	now := a.clock.Now()
	pick := models.DraftPick{
		ID:          uuid.New(),
		DraftID:     draft.ID,
		PlayerID:    p.ID,
		TeamNumber:  req.TeamNumber,
		Round:       slot.Round,
		PickNumber:  req.PickNumber,
		PickInRound: slot.PickInRound,
		IsUserPick:  req.TeamNumber == draft.DraftPosition,
		CreatedAt:   now,
	}

	next := order.SlotFor(req.PickNumber+1, draft.NumTeams)
	params := RecordPickParams{
		Pick:      pick,
		PrevPick:  draft.CurrentPick,
		NewRound:  next.Round,
		NewPick:   req.PickNumber + 1,
		NewStatus: draft.Status,
	}

	if draft.Status == models.DraftStatusSetup {
		params.NewStatus = models.DraftStatusInProgress
		params.StartedAt = &now
		started, err := newOutboxInsert(events.EventTypeDraftStarted, events.DraftStartedPayload{
			DraftID:    draft.ID.String(),
			DraftType:  string(draft.DraftType),
			StartedAt:  now,
			TotalPicks: draft.TotalPicks(),
		})
		if err != nil {
			return nil, err
		}
		params.Events = append(params.Events, started)
	}

	made, err := newOutboxInsert(events.EventTypePickMade, events.PickMadePayload{
		PickID:      pick.ID.String(),
		PlayerID:    p.ID.String(),
		PlayerName:  p.FullName,
		TeamNumber:  pick.TeamNumber,
		Round:       pick.Round,
		PickInRound: pick.PickInRound,
		PickNumber:  pick.PickNumber,
		IsUserPick:  pick.IsUserPick,
		MadeAt:      now,
	})
	if err != nil {
		return nil, err
	}
	params.Events = append(params.Events, made)

	if req.PickNumber == draft.TotalPicks() {
		params.NewStatus = models.DraftStatusCompleted
		params.CompletedAt = &now
		completed, err := newOutboxInsert(events.EventTypeDraftCompleted, events.DraftCompletedPayload{
			DraftID:     draft.ID.String(),
			CompletedAt: now,
			TotalPicks:  draft.TotalPicks(),
		})
		if err != nil {
			return nil, err
		}
		params.Events = append(params.Events, completed)
	}

	if err := a.repo.RecordPick(ctx, params); err != nil {
		return nil, err
	}

	log.Info().
		Str("draft_id", draft.ID.String()).
		Str("player", p.FullName).
		Int("pick_number", pick.PickNumber).
		Int("team_number", pick.TeamNumber).
		Msg("recorded pick")
	return &pick, nil
}

// UndoLastPick removes the most recent pick, which must belong to the
// requesting seat. The delete and the currentPick rewind land in one
// transaction.
func (a *App) UndoLastPick(ctx context.Context, req UndoPickRequest) (*models.DraftPick, error) {
	if err := a.validateUndoPickRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	draft, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	switch draft.Status {
	case models.DraftStatusCompleted:
		return nil, ErrDraftComplete
	case models.DraftStatusAbandoned:
		return nil, ErrDraftAbandoned
	}

	last, err := a.repo.GetLastPick(ctx, req.DraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get last pick: %w", err)
	}
	if last == nil {
		return nil, ErrNoPicksToUndo
	}
	if !last.IsUserPick || last.TeamNumber != req.TeamNumber {
		return nil, fmt.Errorf("%w: pick %d belongs to seat %d", ErrForbiddenUndo, last.PickNumber, last.TeamNumber)
	}

	p, err := a.getSportPlayer(ctx, last.PlayerID, draft.Sport)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	undone, err := newOutboxInsert(events.EventTypePickUndone, events.PickUndonePayload{
		PickID:     last.ID.String(),
		PlayerID:   last.PlayerID.String(),
		PlayerName: p.FullName,
		TeamNumber: last.TeamNumber,
		PickNumber: last.PickNumber,
		UndoneAt:   now,
	})
	if err != nil {
		return nil, err
	}

	params := UndoPickParams{
		DraftID:   req.DraftID,
		PickID:    last.ID,
		PrevPick:  draft.CurrentPick,
		NewRound:  last.Round,
		NewPick:   last.PickNumber,
		NewStatus: draft.Status,
		Events:    []OutboxInsert{undone},
	}
	if last.PickNumber == 1 {
		params.NewStatus = models.DraftStatusSetup
		params.ClearStartedAt = true
	}

	if err := a.repo.UndoPick(ctx, params); err != nil {
		return nil, err
	}

	log.Info().
		Str("draft_id", draft.ID.String()).
		Str("player", p.FullName).
		Int("pick_number", last.PickNumber).
		Msg("undid pick")
	return last, nil
}

// AbandonDraft moves a setup or in-progress draft to its terminal
// abandoned state. Abandoning an already abandoned draft is a no-op.
func (a *App) AbandonDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	draft, err := a.repo.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	switch draft.Status {
	case models.DraftStatusAbandoned:
		return draft, nil
	case models.DraftStatusCompleted:
		return nil, ErrDraftComplete
	}

	event, err := newOutboxInsert(events.EventTypeDraftAbandoned, events.DraftAbandonedPayload{
		DraftID:     id.String(),
		AbandonedAt: a.clock.Now(),
		Reason:      "owner_request",
	})
	if err != nil {
		return nil, err
	}

	abandoned, err := a.repo.AbandonDraft(ctx, id, event)
	if err != nil {
		return nil, err
	}

	log.Info().Str("draft_id", id.String()).Msg("abandoned draft")
	return abandoned, nil
}

// AbandonIdleDrafts abandons active drafts with no activity inside the
// idle window. Used by the janitor. A draft that picks up activity
// between the listing and the abandon is skipped.
func (a *App) AbandonIdleDrafts(ctx context.Context, idleFor time.Duration) (int, error) {
	if idleFor <= 0 {
		return 0, fmt.Errorf("%w: idle window must be positive", ErrInvalidInput)
	}

	ids, err := a.repo.ListIdleDrafts(ctx, idleFor)
	if err != nil {
		return 0, fmt.Errorf("failed to list idle drafts: %w", err)
	}

	abandoned := 0
	for _, id := range ids {
		event, err := newOutboxInsert(events.EventTypeDraftAbandoned, events.DraftAbandonedPayload{
			DraftID:     id.String(),
			AbandonedAt: a.clock.Now(),
			Reason:      "idle_timeout",
		})
		if err != nil {
			return abandoned, err
		}

		if _, err := a.repo.AbandonDraft(ctx, id, event); err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}
			log.Warn().Err(err).Str("draft_id", id.String()).Msg("failed to abandon idle draft")
			continue
		}
		abandoned++
	}

	if abandoned > 0 {
		log.Info().Int("count", abandoned).Msg("abandoned idle drafts")
	}
	return abandoned, nil
}

// DeleteDraft deletes a draft and its picks. In-progress drafts must be
// abandoned first.
func (a *App) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	draft, err := a.repo.GetDraft(ctx, id)
	if err != nil {
		return err
	}

	if draft.Status == models.DraftStatusInProgress {
		return fmt.Errorf("%w: cannot delete a draft in progress, abandon it first", ErrInvalidInput)
	}

	if err := a.repo.DeleteDraft(ctx, id); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	log.Info().Str("draft_id", id.String()).Str("status", string(draft.Status)).Msg("deleted draft")
	return nil
}

// getSportPlayer fetches a catalog entry and checks it belongs to the
// draft's sport.
func (a *App) getSportPlayer(ctx context.Context, id uuid.UUID, sport models.Sport) (*models.Player, error) {
	p, err := a.players.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.Sport != sport {
		return nil, fmt.Errorf("%w: %s is not a %s player", player.ErrPlayerNotFound, p.FullName, sport)
	}
	return p, nil
}

func newOutboxInsert(eventType events.EventType, payload any) (OutboxInsert, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxInsert{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return OutboxInsert{EventType: eventType, Payload: data}, nil
}

// Validation methods

// validateCreateDraftRequest validates create draft request
func (a *App) validateCreateDraftRequest(req CreateDraftRequest) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if req.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	profile, err := base.GetProfile(req.Sport)
	if err != nil {
		return fmt.Errorf("%w: invalid sport: %s", ErrInvalidInput, req.Sport)
	}
	if req.DraftType == "" {
		return fmt.Errorf("%w: draft_type is required", ErrInvalidInput)
	}
	if _, err := orderFor(req.DraftType); err != nil {
		return fmt.Errorf("%w: invalid draft type: %s", ErrInvalidInput, req.DraftType)
	}
	if req.ScoringType == "" {
		return fmt.Errorf("%w: scoring_type is required", ErrInvalidInput)
	}
	if !base.SupportsScoringType(profile, req.ScoringType) {
		return fmt.Errorf("%w: scoring type %s is not valid for %s", ErrInvalidInput, req.ScoringType, req.Sport)
	}
	if req.NumTeams < 4 || req.NumTeams > 20 {
		return fmt.Errorf("%w: num_teams must be between 4 and 20", ErrInvalidInput)
	}
	if req.RosterSize < 5 || req.RosterSize > 25 {
		return fmt.Errorf("%w: roster_size must be between 5 and 25", ErrInvalidInput)
	}
	if req.DraftPosition < 1 || req.DraftPosition > req.NumTeams {
		return fmt.Errorf("%w: draft_position must be between 1 and num_teams", ErrInvalidInput)
	}
	return nil
}

func (a *App) validateMakePickRequest(req MakePickRequest) error {
	if req.DraftID == uuid.Nil {
		return fmt.Errorf("%w: draft_id is required", ErrInvalidInput)
	}
	if req.PlayerID == uuid.Nil {
		return fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	if req.TeamNumber < 1 {
		return fmt.Errorf("%w: team_number must be greater than 0", ErrInvalidInput)
	}
	if req.PickNumber < 1 {
		return fmt.Errorf("%w: pick_number must be greater than 0", ErrInvalidInput)
	}
	return nil
}

func (a *App) validateUndoPickRequest(req UndoPickRequest) error {
	if req.DraftID == uuid.Nil {
		return fmt.Errorf("%w: draft_id is required", ErrInvalidInput)
	}
	if req.TeamNumber < 1 {
		return fmt.Errorf("%w: team_number must be greater than 0", ErrInvalidInput)
	}
	return nil
}
