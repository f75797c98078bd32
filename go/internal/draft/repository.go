package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// Repository persists drafts, picks and their outbox events in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

const draftColumns = `
    id, user_id, sport, draft_type, scoring_type,
    num_teams, draft_position, roster_size,
    current_round, current_pick, status, settings,
    started_at, completed_at, created_at, updated_at`

const playerColumns = `
    id, sport, full_name, team, position, eligible_positions, adp, created_at`

func (r *Repository) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO drafts (
            id, user_id, sport, draft_type, scoring_type,
            num_teams, draft_position, roster_size, settings
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING`+draftColumns,
		uuid.New(), req.UserID, req.Sport, req.DraftType, req.ScoringType,
		req.NumTeams, req.DraftPosition, req.RosterSize, req.Settings,
	)

	draft, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT`+draftColumns+`
        FROM drafts
        WHERE id = $1`,
		id,
	)

	draft, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

func (r *Repository) ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]models.Draft, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT`+draftColumns+`
        FROM drafts
        WHERE user_id = $1
        ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, *draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

func (r *Repository) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// AbandonDraft moves an active draft to abandoned and records the event
// in the same transaction. Returns ErrConflict when the draft is no
// longer in an abandonable status.
func (r *Repository) AbandonDraft(ctx context.Context, id uuid.UUID, event OutboxInsert) (*models.Draft, error) {
	var abandoned *models.Draft
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
            UPDATE drafts
            SET status = $2, updated_at = now()
            WHERE id = $1 AND status IN ($3, $4)
            RETURNING`+draftColumns,
			id, models.DraftStatusAbandoned,
			models.DraftStatusSetup, models.DraftStatusInProgress,
		)

		draft, err := scanDraft(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrConflict
			}
			return fmt.Errorf("failed to abandon draft: %w", err)
		}

		if err := insertOutbox(ctx, tx, id, []OutboxInsert{event}); err != nil {
			return err
		}

		abandoned = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return abandoned, nil
}

// ListIdleDrafts returns active drafts untouched for at least idleFor.
func (r *Repository) ListIdleDrafts(ctx context.Context, idleFor time.Duration) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id
        FROM drafts
        WHERE status IN ($1, $2)
          AND updated_at < now() - make_interval(secs => $3)`,
		models.DraftStatusSetup, models.DraftStatusInProgress, idleFor.Seconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list idle drafts: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan draft id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list idle drafts: %w", err)
	}
	return ids, nil
}

func (r *Repository) GetDraftPicks(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, draft_id, player_id, team_number, round,
               pick_number, pick_in_round, is_user_pick, created_at
        FROM draft_picks
        WHERE draft_id = $1
        ORDER BY pick_number ASC`,
		draftID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft picks: %w", err)
	}
	defer rows.Close()

	var picks []models.DraftPick
	for rows.Next() {
		var p models.DraftPick
		if err := rows.Scan(
			&p.ID, &p.DraftID, &p.PlayerID, &p.TeamNumber, &p.Round,
			&p.PickNumber, &p.PickInRound, &p.IsUserPick, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draft pick: %w", err)
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get draft picks: %w", err)
	}
	return picks, nil
}

func (r *Repository) GetDraftPicksWithPlayers(ctx context.Context, draftID uuid.UUID) ([]PickWithPlayer, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT dp.id, dp.draft_id, dp.player_id, dp.team_number, dp.round,
               dp.pick_number, dp.pick_in_round, dp.is_user_pick, dp.created_at,
               p.full_name, p.team, p.position
        FROM draft_picks dp
        JOIN players p ON p.id = dp.player_id
        WHERE dp.draft_id = $1
        ORDER BY dp.pick_number ASC`,
		draftID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft picks: %w", err)
	}
	defer rows.Close()

	var picks []PickWithPlayer
	for rows.Next() {
		var p PickWithPlayer
		if err := rows.Scan(
			&p.ID, &p.DraftID, &p.PlayerID, &p.TeamNumber, &p.Round,
			&p.PickNumber, &p.PickInRound, &p.IsUserPick, &p.CreatedAt,
			&p.PlayerName, &p.PlayerTeam, &p.PlayerPosition,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draft pick: %w", err)
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get draft picks: %w", err)
	}
	return picks, nil
}

// GetLastPick returns the most recent pick, or nil when the draft has
// no picks yet.
func (r *Repository) GetLastPick(ctx context.Context, draftID uuid.UUID) (*models.DraftPick, error) {
	var p models.DraftPick
	err := r.pool.QueryRow(ctx, `
        SELECT id, draft_id, player_id, team_number, round,
               pick_number, pick_in_round, is_user_pick, created_at
        FROM draft_picks
        WHERE draft_id = $1
        ORDER BY pick_number DESC
        LIMIT 1`,
		draftID,
	).Scan(
		&p.ID, &p.DraftID, &p.PlayerID, &p.TeamNumber, &p.Round,
		&p.PickNumber, &p.PickInRound, &p.IsUserPick, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last pick: %w", err)
	}
	return &p, nil
}

func (r *Repository) HasDraftPick(ctx context.Context, draftID, playerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM draft_picks WHERE draft_id = $1 AND player_id = $2
        )`,
		draftID, playerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check draft pick: %w", err)
	}
	return exists, nil
}

func (r *Repository) ListAvailablePlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT`+playerColumns+`
        FROM players
        WHERE sport = (SELECT sport FROM drafts WHERE id = $1)
          AND id NOT IN (SELECT player_id FROM draft_picks WHERE draft_id = $1)
        ORDER BY adp ASC NULLS LAST, full_name ASC`,
		draftID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list available players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (r *Repository) ListRosterPlayers(ctx context.Context, draftID uuid.UUID, teamNumber int) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT p.id, p.sport, p.full_name, p.team, p.position,
               p.eligible_positions, p.adp, p.created_at
        FROM draft_picks dp
        JOIN players p ON p.id = dp.player_id
        WHERE dp.draft_id = $1 AND dp.team_number = $2
        ORDER BY dp.pick_number ASC`,
		draftID, teamNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// RecordPick inserts the pick, advances the draft and queues the outbox
// events in one transaction. The draft update is conditional on the
// pick counter the caller observed, a concurrent writer makes it a
// no-op and the whole transaction rolls back with ErrConflict.
func (r *Repository) RecordPick(ctx context.Context, params RecordPickParams) error {
	return sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		pick := params.Pick
		_, err := tx.Exec(ctx, `
            INSERT INTO draft_picks (
                id, draft_id, player_id, team_number, round,
                pick_number, pick_in_round, is_user_pick, created_at
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			pick.ID, pick.DraftID, pick.PlayerID, pick.TeamNumber, pick.Round,
			pick.PickNumber, pick.PickInRound, pick.IsUserPick, pick.CreatedAt,
		)
		if err != nil {
			if sqlutil.IsUniqueViolation(err) {
				switch sqlutil.ConstraintName(err) {
				case "draft_picks_player_once":
					return ErrAlreadyDrafted
				case "draft_picks_pick_number_once":
					return ErrConflict
				}
			}
			if sqlutil.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: player does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("failed to insert draft pick: %w", err)
		}

		tag, err := tx.Exec(ctx, `
            UPDATE drafts
            SET current_round = $2,
                current_pick = $3,
                status = $4,
                started_at = COALESCE($5, started_at),
                completed_at = COALESCE($6, completed_at),
                updated_at = now()
            WHERE id = $1 AND current_pick = $7 AND status IN ($8, $9)`,
			pick.DraftID, params.NewRound, params.NewPick, params.NewStatus,
			params.StartedAt, params.CompletedAt, params.PrevPick,
			models.DraftStatusSetup, models.DraftStatusInProgress,
		)
		if err != nil {
			return fmt.Errorf("failed to advance draft: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}

		return insertOutbox(ctx, tx, pick.DraftID, params.Events)
	})
}

// UndoPick deletes the pick and rewinds the draft in one transaction.
func (r *Repository) UndoPick(ctx context.Context, params UndoPickParams) error {
	return sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM draft_picks WHERE id = $1`, params.PickID)
		if err != nil {
			return fmt.Errorf("failed to delete draft pick: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}

		tag, err = tx.Exec(ctx, `
            UPDATE drafts
            SET current_round = $2,
                current_pick = $3,
                status = $4,
                started_at = CASE WHEN $5 THEN NULL ELSE started_at END,
                updated_at = now()
            WHERE id = $1 AND current_pick = $6 AND status = $7`,
			params.DraftID, params.NewRound, params.NewPick, params.NewStatus,
			params.ClearStartedAt, params.PrevPick, models.DraftStatusInProgress,
		)
		if err != nil {
			return fmt.Errorf("failed to rewind draft: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}

		return insertOutbox(ctx, tx, params.DraftID, params.Events)
	})
}

func insertOutbox(ctx context.Context, tx pgx.Tx, draftID uuid.UUID, events []OutboxInsert) error {
	for _, ev := range events {
		_, err := tx.Exec(ctx, `
            INSERT INTO draft_outbox (id, draft_id, event_type, payload)
            VALUES ($1,$2,$3,$4)`,
			uuid.New(), draftID, ev.EventType, ev.Payload,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s outbox event: %w", ev.EventType, err)
		}
	}
	return nil
}

func scanDraft(row pgx.Row) (*models.Draft, error) {
	var d models.Draft
	err := row.Scan(
		&d.ID, &d.UserID, &d.Sport, &d.DraftType, &d.ScoringType,
		&d.NumTeams, &d.DraftPosition, &d.RosterSize,
		&d.CurrentRound, &d.CurrentPick, &d.Status, &d.Settings,
		&d.StartedAt, &d.CompletedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectPlayers(rows pgx.Rows) ([]models.Player, error) {
	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(
			&p.ID, &p.Sport, &p.FullName, &p.Team, &p.Position,
			&p.EligiblePositions, &p.ADP, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	return players, nil
}
