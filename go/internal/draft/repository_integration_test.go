package draft

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/go/internal/dbconfig"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// integrationRepo connects to the database named by DATABASE_URL and
// applies migrations. Tests using it skip when the variable is unset.
func integrationRepo(t *testing.T) (*Repository, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping Postgres integration test")
	}

	require.NoError(t, dbconfig.RunMigrations(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewRepository(pool), pool
}

func insertCatalogPlayer(t *testing.T, pool *pgxpool.Pool, sport models.Sport, name, position string, adp int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
        INSERT INTO players (id, sport, full_name, team, position, eligible_positions, adp)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, sport, name, "FA", position, []string{position}, adp,
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM players WHERE id = $1`, id)
	})
	return id
}

func createIntegrationDraft(t *testing.T, repo *Repository, pool *pgxpool.Pool) *models.Draft {
	t.Helper()
	d, err := repo.CreateDraft(context.Background(), CreateDraftRequest{
		UserID:        uuid.New(),
		Sport:         models.SportNFL,
		DraftType:     models.DraftTypeSnake,
		ScoringType:   models.ScoringTypePPR,
		NumTeams:      4,
		DraftPosition: 1,
		RosterSize:    5,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM draft_outbox WHERE draft_id = $1`, d.ID)
		pool.Exec(context.Background(), `DELETE FROM drafts WHERE id = $1`, d.ID)
	})
	return d
}

func stubEvent(eventType events.EventType) OutboxInsert {
	return OutboxInsert{EventType: eventType, Payload: []byte(`{}`)}
}

func outboxCount(t *testing.T, pool *pgxpool.Pool, draftID uuid.UUID) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM draft_outbox WHERE draft_id = $1`, draftID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestRepositoryPickLifecycle(t *testing.T) {
	repo, pool := integrationRepo(t)
	ctx := context.Background()

	alpha := insertCatalogPlayer(t, pool, models.SportNFL, "Integration Alpha", "RB", 1)
	beta := insertCatalogPlayer(t, pool, models.SportNFL, "Integration Beta", "WR", 2)
	d := createIntegrationDraft(t, repo, pool)

	got, err := repo.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusSetup, got.Status)
	assert.Equal(t, 1, got.CurrentPick)

	now := time.Now().UTC().Truncate(time.Microsecond)
	first := models.DraftPick{
		ID: uuid.New(), DraftID: d.ID, PlayerID: alpha,
		TeamNumber: 1, Round: 1, PickNumber: 1, PickInRound: 1,
		IsUserPick: true, CreatedAt: now,
	}
	err = repo.RecordPick(ctx, RecordPickParams{
		Pick: first, PrevPick: 1, NewRound: 1, NewPick: 2,
		NewStatus: models.DraftStatusInProgress, StartedAt: &now,
		Events: []OutboxInsert{stubEvent(events.EventTypeDraftStarted), stubEvent(events.EventTypePickMade)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, outboxCount(t, pool, d.ID))

	got, err = repo.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusInProgress, got.Status)
	assert.Equal(t, 2, got.CurrentPick)
	require.NotNil(t, got.StartedAt)

	taken, err := repo.HasDraftPick(ctx, d.ID, alpha)
	require.NoError(t, err)
	assert.True(t, taken)

	available, err := repo.ListAvailablePlayers(ctx, d.ID)
	require.NoError(t, err)
	for _, p := range available {
		assert.NotEqual(t, alpha, p.ID, "drafted player still listed as available")
	}

	joined, err := repo.GetDraftPicksWithPlayers(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "Integration Alpha", joined[0].PlayerName)
	assert.Equal(t, "RB", joined[0].PlayerPosition)

	roster, err := repo.ListRosterPlayers(ctx, d.ID, 1)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, alpha, roster[0].ID)

	// Same player again on the next slot trips the per-draft uniqueness.
	dup := first
	dup.ID = uuid.New()
	dup.TeamNumber = 2
	dup.PickNumber = 2
	dup.PickInRound = 2
	dup.IsUserPick = false
	err = repo.RecordPick(ctx, RecordPickParams{
		Pick: dup, PrevPick: 2, NewRound: 1, NewPick: 3,
		NewStatus: models.DraftStatusInProgress,
		Events:    []OutboxInsert{stubEvent(events.EventTypePickMade)},
	})
	assert.ErrorIs(t, err, ErrAlreadyDrafted)

	// A second writer racing for the same slot loses on pick number.
	slotRace := dup
	slotRace.ID = uuid.New()
	slotRace.PlayerID = beta
	slotRace.PickNumber = 1
	slotRace.PickInRound = 1
	err = repo.RecordPick(ctx, RecordPickParams{
		Pick: slotRace, PrevPick: 2, NewRound: 1, NewPick: 3,
		NewStatus: models.DraftStatusInProgress,
		Events:    []OutboxInsert{stubEvent(events.EventTypePickMade)},
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Unknown player fails the foreign key, not a raw SQL error.
	ghost := dup
	ghost.ID = uuid.New()
	ghost.PlayerID = uuid.New()
	err = repo.RecordPick(ctx, RecordPickParams{
		Pick: ghost, PrevPick: 2, NewRound: 1, NewPick: 3,
		NewStatus: models.DraftStatusInProgress,
		Events:    []OutboxInsert{stubEvent(events.EventTypePickMade)},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// A stale counter rolls back the whole transaction, pick row included.
	stale := dup
	stale.ID = uuid.New()
	stale.PlayerID = beta
	err = repo.RecordPick(ctx, RecordPickParams{
		Pick: stale, PrevPick: 9, NewRound: 1, NewPick: 3,
		NewStatus: models.DraftStatusInProgress,
		Events:    []OutboxInsert{stubEvent(events.EventTypePickMade)},
	})
	assert.ErrorIs(t, err, ErrConflict)
	taken, err = repo.HasDraftPick(ctx, d.ID, beta)
	require.NoError(t, err)
	assert.False(t, taken, "rolled back pick row survived")

	// Undo pick 1 rewinds the draft to setup and clears started_at.
	last, err := repo.GetLastPick(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, 1, last.PickNumber)

	err = repo.UndoPick(ctx, UndoPickParams{
		DraftID: d.ID, PickID: last.ID, PrevPick: 2,
		NewRound: 1, NewPick: 1, NewStatus: models.DraftStatusSetup,
		ClearStartedAt: true,
		Events:         []OutboxInsert{stubEvent(events.EventTypePickUndone)},
	})
	require.NoError(t, err)

	got, err = repo.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusSetup, got.Status)
	assert.Equal(t, 1, got.CurrentPick)
	assert.Nil(t, got.StartedAt)

	last, err = repo.GetLastPick(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestRepositoryDraftLifecycle(t *testing.T) {
	repo, pool := integrationRepo(t)
	ctx := context.Background()

	d := createIntegrationDraft(t, repo, pool)

	drafts, err := repo.ListDraftsByUser(ctx, d.UserID)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, d.ID, drafts[0].ID)

	// Backdate activity so the idle scan picks the draft up.
	_, err = pool.Exec(ctx,
		`UPDATE drafts SET updated_at = now() - interval '2 hours' WHERE id = $1`, d.ID)
	require.NoError(t, err)

	idle, err := repo.ListIdleDrafts(ctx, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, idle, d.ID)

	abandoned, err := repo.AbandonDraft(ctx, d.ID, stubEvent(events.EventTypeDraftAbandoned))
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusAbandoned, abandoned.Status)
	assert.Equal(t, 1, outboxCount(t, pool, d.ID))

	// Terminal drafts are not abandonable a second time.
	_, err = repo.AbandonDraft(ctx, d.ID, stubEvent(events.EventTypeDraftAbandoned))
	assert.ErrorIs(t, err, ErrConflict)

	idle, err = repo.ListIdleDrafts(ctx, time.Hour)
	require.NoError(t, err)
	assert.NotContains(t, idle, d.ID)

	require.NoError(t, repo.DeleteDraft(ctx, d.ID))
	_, err = repo.GetDraft(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, repo.DeleteDraft(ctx, d.ID), ErrDraftNotFound)
}
