package detectionRepository

import (
	"context"

	"BatiDetect/internal/entity"
	"BatiDetect/pkg/log"

	"github.com/jmoiron/sqlx"
)

func (r *analysesRepository) CreateAnalysis(ctx context.Context, record entity.AnalysisRecord) error {
	query, args, err := sqlx.Named(queryCreateAnalysis, record)
	if err != nil {
		log.WithRequestID(r.log, ctx).WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to build SQL query for CreateAnalysis")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		log.WithRequestID(r.log, ctx).WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Database error when journaling analysis")
		return err
	}

	return nil
}

func (r *analysesRepository) ListRecentAnalyses(ctx context.Context, limit int) ([]entity.AnalysisRecord, error) {
	return r.list(ctx, queryListRecentAnalyses, map[string]interface{}{
		"limit": limit,
	})
}

func (r *analysesRepository) ListSessionAnalyses(ctx context.Context, sessionID string, limit int) ([]entity.AnalysisRecord, error) {
	return r.list(ctx, queryListSessionAnalyses, map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
	})
}

func (r *analysesRepository) list(ctx context.Context, namedQuery string, argsKV map[string]interface{}) ([]entity.AnalysisRecord, error) {
	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		log.WithRequestID(r.log, ctx).WithFields(log.Fields{
			"error": err.Error(),
		}).Error("List analyses named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	records := []entity.AnalysisRecord{}
	if err := r.q.SelectContext(ctx, &records, query, args...); err != nil {
		log.WithRequestID(r.log, ctx).WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Database error when listing analyses")
		return nil, err
	}

	for i := range records {
		records[i].CreatedAt = records[i].CreatedAt.UTC()
	}

	return records, nil
}
