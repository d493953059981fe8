package detectionService

import (
	"context"
	"os"
	"strconv"
	"time"

	"BatiDetect/internal/api/detection"
	detectionRepository "BatiDetect/internal/api/detection/repository"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type IDetectionService interface {
	Analyze(ctx context.Context, req detection.Analysis) (*entity.DetectionResult, error)
	RecentAnalyses(ctx context.Context, sessionID string, limit int) ([]entity.AnalysisRecord, error)
	Backend() string
}

type detectionService struct {
	log        *logrus.Logger
	detector   detector.IDetector
	repo       detectionRepository.Repository
	validator  *validator.Validate
	utils      utils.IUtils
	maxRetries int
	backoff    time.Duration
	now        func() time.Time
}

// NewDetectionService wires the detection seam. repo may be nil, in which
// case analyses are not journaled.
func NewDetectionService(
	log *logrus.Logger,
	d detector.IDetector,
	repo detectionRepository.Repository,
	validator *validator.Validate,
	utils utils.IUtils,
) IDetectionService {
	return &detectionService{
		log:        log,
		detector:   d,
		repo:       repo,
		validator:  validator,
		utils:      utils,
		maxRetries: retriesFromEnv(),
		backoff:    200 * time.Millisecond,
		now:        time.Now,
	}
}

func retriesFromEnv() int {
	retries, err := strconv.Atoi(os.Getenv("DETECTION_MAX_RETRIES"))
	if err != nil || retries < 0 {
		return 2
	}
	return retries
}
