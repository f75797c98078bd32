package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

// PlayerRepository defines what the app layer needs from the repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayersBySport(ctx context.Context, sport models.Sport) ([]models.Player, error)
}

// App handles player catalog lookups. The catalog is read-only here, the
// seed tool and the external feed own writes.
type App struct {
	repo PlayerRepository
}

// NewApp creates a new player App
func NewApp(repo PlayerRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetPlayer retrieves a catalog entry by ID
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// ListPlayersBySport lists the catalog for a sport ordered by ADP
func (a *App) ListPlayersBySport(ctx context.Context, sport models.Sport) ([]models.Player, error) {
	if _, err := base.GetProfile(sport); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSport, sport)
	}

	players, err := a.repo.ListPlayersBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}
