package detectionRepository

import (
	"context"

	"BatiDetect/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
	Migrate(ctx context.Context) error
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Analyses: &analysesRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

func (r *repository) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, queryCreateAnalysesTable); err != nil {
		r.log.WithField("error", err.Error()).Error("Failed to create analysis_journal table")
		return err
	}
	return nil
}

type Client struct {
	Analyses interface {
		CreateAnalysis(ctx context.Context, record entity.AnalysisRecord) error
		ListRecentAnalyses(ctx context.Context, limit int) ([]entity.AnalysisRecord, error)
		ListSessionAnalyses(ctx context.Context, sessionID string, limit int) ([]entity.AnalysisRecord, error)
	}

	Commit   func() error
	Rollback func() error
}

type analysesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
