package detectionRepository

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"BatiDetect/internal/entity"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := New(db, log)
	require.NoError(t, repo.Migrate(context.Background()))
	// Migrations are idempotent.
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func record(id, session string, at time.Time) entity.AnalysisRecord {
	return entity.AnalysisRecord{
		ID:        id,
		SessionID: session,
		Latitude:  48.8566,
		Longitude: 2.3522,
		InputMode: "manual",
		Backend:   "stub",
		Message:   "Résultat simulé",
		Simulated: true,
		CreatedAt: at,
	}
}

func TestAnalysesRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, client.Analyses.CreateAnalysis(ctx, record("a1", "s1", base)))
	require.NoError(t, client.Analyses.CreateAnalysis(ctx, record("a2", "s2", base.Add(time.Minute))))
	require.NoError(t, client.Analyses.CreateAnalysis(ctx, record("a3", "s1", base.Add(2*time.Minute))))

	recent, err := client.Analyses.ListRecentAnalyses(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "a3", recent[0].ID)
	require.Equal(t, "a2", recent[1].ID)
	require.True(t, recent[0].Simulated)
	require.Equal(t, base.Add(2*time.Minute), recent[0].CreatedAt)

	mine, err := client.Analyses.ListSessionAnalyses(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "a3", mine[0].ID)
	require.Equal(t, "a1", mine[1].ID)

	none, err := client.Analyses.ListSessionAnalyses(ctx, "nobody", 10)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestAnalysesRepositoryTransaction(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	tx, err := repo.NewClient(true)
	require.NoError(t, err)
	require.NoError(t, tx.Analyses.CreateAnalysis(ctx, record("rolled-back", "s", time.Now().UTC())))
	require.NoError(t, tx.Rollback())

	client, err := repo.NewClient(false)
	require.NoError(t, err)
	all, err := client.Analyses.ListRecentAnalyses(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, all)
}
