package detectionService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BatiDetect/internal/api/detection"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/log"
)

const (
	defaultAnalysesLimit = 20
	maxAnalysesLimit     = 100
)

func (s *detectionService) Backend() string {
	return s.detector.Name()
}

func (s *detectionService) Analyze(ctx context.Context, req detection.Analysis) (*entity.DetectionResult, error) {

	if err := s.validator.Struct(req.Point); err != nil {
		return nil, fmt.Errorf("%w: %w", detection.ErrInvalidCoordinate, err)
	}

	result, err := s.analyzeWithRetry(ctx, req.Point)
	if err != nil {
		log.WithRequestID(s.log, ctx).WithFields(log.Fields{
			"backend": s.detector.Name(),
			"point":   req.Point.String(),
			"error":   err.Error(),
		}).Warn("Detection failed")
		return nil, translate(err)
	}

	log.WithRequestID(s.log, ctx).WithFields(log.Fields{
		"backend":   result.Backend,
		"point":     req.Point.String(),
		"buildings": result.Buildings,
		"illegal":   result.Illegal,
		"simulated": result.Simulated,
	}).Info("Detection completed")

	s.journal(ctx, req, result)

	return result, nil
}

func (s *detectionService) analyzeWithRetry(ctx context.Context, point entity.Coordinate) (*entity.DetectionResult, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, lastErr
			case <-time.After(time.Duration(attempt) * s.backoff):
			}
		}

		result, err := s.detector.Analyze(ctx, point)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !detector.IsTransient(err) || ctx.Err() != nil {
			return nil, err
		}

		log.WithRequestID(s.log, ctx).WithFields(log.Fields{
			"attempt": attempt + 1,
			"error":   err.Error(),
		}).Debug("Transient detection error, retrying")
	}
	return nil, lastErr
}

// translate keeps the backend cause in the chain while adding the HTTP-mapped
// domain error.
func translate(err error) error {
	switch {
	case errors.Is(err, detector.ErrInvalidCoordinate):
		return fmt.Errorf("%w: %w", detection.ErrInvalidCoordinate, err)
	case errors.Is(err, detector.ErrNoCoverage):
		return fmt.Errorf("%w: %w", detection.ErrNoCoverage, err)
	case detector.IsTransient(err):
		return fmt.Errorf("%w: %w", detection.ErrBackendUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", detection.ErrInternalServerError, err)
	}
}

func (s *detectionService) journal(ctx context.Context, req detection.Analysis, result *entity.DetectionResult) {
	if s.repo == nil {
		return
	}

	id, err := s.utils.NewULIDFromTimestamp(s.now())
	if err != nil {
		log.WithRequestID(s.log, ctx).WithField("error", err.Error()).Error("Failed to mint journal id")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = entity.InputModeManual
	}

	record := entity.AnalysisRecord{
		ID:        id,
		SessionID: req.SessionID,
		Latitude:  req.Point.Latitude,
		Longitude: req.Point.Longitude,
		InputMode: string(mode),
		Backend:   result.Backend,
		Message:   result.Message,
		Simulated: result.Simulated,
		CreatedAt: s.now().UTC(),
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		log.WithRequestID(s.log, ctx).WithField("error", err.Error()).Error("Failed to open journal client")
		return
	}

	if err := client.Analyses.CreateAnalysis(ctx, record); err != nil {
		log.WithRequestID(s.log, ctx).WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to journal analysis")
	}
}

func (s *detectionService) RecentAnalyses(ctx context.Context, sessionID string, limit int) ([]entity.AnalysisRecord, error) {
	if s.repo == nil {
		return nil, detection.ErrJournalDisabled
	}
	switch {
	case limit <= 0:
		limit = defaultAnalysesLimit
	case limit > maxAnalysesLimit:
		limit = maxAnalysesLimit
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		return client.Analyses.ListSessionAnalyses(ctx, sessionID, limit)
	}
	return client.Analyses.ListRecentAnalyses(ctx, limit)
}
