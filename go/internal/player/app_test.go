package player

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
	_ "github.com/mcdev12/draftroom/go/internal/sports/nba"
	_ "github.com/mcdev12/draftroom/go/internal/sports/nfl"
)

func TestMain(m *testing.M) {
	for _, sport := range base.Sports() {
		if err := base.InitializeProfile(sport); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}

type fakeRepo struct {
	players map[uuid.UUID]models.Player
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{players: make(map[uuid.UUID]models.Player)}
}

func (f *fakeRepo) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

func (f *fakeRepo) ListPlayersBySport(_ context.Context, sport models.Sport) ([]models.Player, error) {
	var out []models.Player
	for _, p := range f.players {
		if p.Sport == sport {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestGetPlayerNotFound(t *testing.T) {
	app := NewApp(newFakeRepo())

	_, err := app.GetPlayer(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestListPlayersBySport(t *testing.T) {
	repo := newFakeRepo()
	lamb := models.Player{ID: uuid.New(), Sport: models.SportNFL, FullName: "CeeDee Lamb", Team: "DAL", Position: "WR"}
	doncic := models.Player{ID: uuid.New(), Sport: models.SportNBA, FullName: "Luka Doncic", Team: "LAL", Position: "PG"}
	repo.players[lamb.ID] = lamb
	repo.players[doncic.ID] = doncic

	app := NewApp(repo)

	players, err := app.ListPlayersBySport(context.Background(), models.SportNFL)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "CeeDee Lamb", players[0].FullName)
}

func TestListPlayersBySportRejectsUnknownSport(t *testing.T) {
	app := NewApp(newFakeRepo())

	_, err := app.ListPlayersBySport(context.Background(), models.Sport("CRICKET"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSport))
}
