package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// Repository reads the player catalog from Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

const playerColumns = `
    id, sport, full_name, team, position, eligible_positions, adp, created_at`

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT`+playerColumns+`
        FROM players
        WHERE id = $1`,
		id,
	)

	var p models.Player
	err := row.Scan(
		&p.ID, &p.Sport, &p.FullName, &p.Team, &p.Position,
		&p.EligiblePositions, &p.ADP, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

func (r *Repository) ListPlayersBySport(ctx context.Context, sport models.Sport) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT`+playerColumns+`
        FROM players
        WHERE sport = $1
        ORDER BY adp ASC NULLS LAST, full_name ASC`,
		sport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

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
