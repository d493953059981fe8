package detectionService

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"BatiDetect/internal/api/detection"
	detectionRepository "BatiDetect/internal/api/detection/repository"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// flakyDetector fails with failures[i] on call i, then falls back to the stub.
type flakyDetector struct {
	mu       sync.Mutex
	failures []error
	calls    int
}

func (f *flakyDetector) Name() string { return "flaky" }

func (f *flakyDetector) Analyze(ctx context.Context, point entity.Coordinate) (*entity.DetectionResult, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.mu.Unlock()

	if i < len(f.failures) {
		return nil, f.failures[i]
	}
	return detector.NewStub().Analyze(ctx, point)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(t *testing.T, d detector.IDetector, repo detectionRepository.Repository) *detectionService {
	t.Helper()
	t.Setenv("DETECTION_MAX_RETRIES", "2")

	svc := NewDetectionService(testLogger(), d, repo, validator.New(), utils.New()).(*detectionService)
	svc.backoff = 0
	return svc
}

func newJournal(t *testing.T) detectionRepository.Repository {
	t.Helper()

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := detectionRepository.New(db, testLogger())
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func paris() detection.Analysis {
	return detection.Analysis{
		SessionID: "s1",
		Mode:      entity.InputModeManual,
		Point:     entity.Coordinate{Latitude: 48.8566, Longitude: 2.3522},
	}
}

func TestAnalyzeRetriesTransientErrors(t *testing.T) {
	d := &flakyDetector{failures: []error{detector.ErrBackendUnavailable, context.DeadlineExceeded}}
	svc := newTestService(t, d, nil)

	result, err := svc.Analyze(context.Background(), paris())
	require.NoError(t, err)
	require.Equal(t, 3, d.calls)
	require.True(t, result.Simulated)
}

func TestAnalyzeGivesUpAfterMaxRetries(t *testing.T) {
	d := &flakyDetector{failures: []error{
		detector.ErrBackendUnavailable,
		detector.ErrBackendUnavailable,
		detector.ErrBackendUnavailable,
	}}
	svc := newTestService(t, d, nil)

	_, err := svc.Analyze(context.Background(), paris())
	require.ErrorIs(t, err, detection.ErrBackendUnavailable)
	require.ErrorIs(t, err, detector.ErrBackendUnavailable)
	require.Equal(t, 3, d.calls)
}

func TestAnalyzeDoesNotRetryPermanentErrors(t *testing.T) {
	d := &flakyDetector{failures: []error{detector.ErrNoCoverage}}
	svc := newTestService(t, d, nil)

	_, err := svc.Analyze(context.Background(), paris())
	require.ErrorIs(t, err, detection.ErrNoCoverage)
	require.Equal(t, 1, d.calls)
}

func TestAnalyzeValidatesBeforeCallingBackend(t *testing.T) {
	d := &flakyDetector{}
	svc := newTestService(t, d, nil)

	req := paris()
	req.Point.Longitude = 200
	_, err := svc.Analyze(context.Background(), req)
	require.ErrorIs(t, err, detection.ErrInvalidCoordinate)
	require.Equal(t, 0, d.calls)
}

func TestAnalyzeJournalsResult(t *testing.T) {
	repo := newJournal(t)
	svc := newTestService(t, detector.NewStub(), repo)

	_, err := svc.Analyze(context.Background(), paris())
	require.NoError(t, err)

	map40 := detection.Analysis{SessionID: "s2", Mode: entity.InputModeMap, Point: entity.Coordinate{Latitude: 40, Longitude: -3}}
	_, err = svc.Analyze(context.Background(), map40)
	require.NoError(t, err)

	all, err := svc.RecentAnalyses(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	mine, err := svc.RecentAnalyses(context.Background(), "s2", 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "map", mine[0].InputMode)
	require.Equal(t, detector.BackendStub, mine[0].Backend)
	require.Equal(t, "Résultat simulé : 3 bâtiments détectés dont 1 illégal sur le secteur géré par 40.000000, -3.000000.", mine[0].Message)
}

func TestRecentAnalysesWithoutJournal(t *testing.T) {
	svc := newTestService(t, detector.NewStub(), nil)

	_, err := svc.RecentAnalyses(context.Background(), "", 10)
	require.True(t, errors.Is(err, detection.ErrJournalDisabled))
	require.Equal(t, detector.BackendStub, svc.Backend())
}

func TestRecentAnalysesLimits(t *testing.T) {
	repo := newJournal(t)
	svc := newTestService(t, detector.NewStub(), repo)

	for i := 0; i < defaultAnalysesLimit+5; i++ {
		_, err := svc.Analyze(context.Background(), paris())
		require.NoError(t, err)
	}

	for _, tc := range []struct {
		limit int
		want  int
	}{
		{limit: 0, want: defaultAnalysesLimit},
		{limit: 3, want: 3},
		{limit: maxAnalysesLimit, want: defaultAnalysesLimit + 5},
		{limit: 500, want: defaultAnalysesLimit + 5},
	} {
		records, err := svc.RecentAnalyses(context.Background(), "", tc.limit)
		require.NoError(t, err)
		require.Len(t, records, tc.want, "limit %d", tc.limit)
	}
}
