package detector

import (
	"context"
	"errors"
	"fmt"
	"os"

	"BatiDetect/internal/entity"
)

var (
	// ErrBackendUnavailable is transient: the call may succeed if retried.
	ErrBackendUnavailable = errors.New("detection backend unavailable")
	ErrNoCoverage         = errors.New("no imagery coverage for this area")
	ErrInvalidCoordinate  = errors.New("coordinate out of range")
)

const (
	BackendStub      = "stub"
	BackendHTTP      = "http"
	BackendWebsocket = "websocket"
)

// IDetector is the seam where a real detection service plugs in. Page
// renderers only ever see this interface.
type IDetector interface {
	Analyze(ctx context.Context, point entity.Coordinate) (*entity.DetectionResult, error)
	Name() string
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

// New picks the backend from DETECTION_BACKEND; the stub is the default.
func New() (IDetector, error) {
	url := os.Getenv("DETECTION_BACKEND_URL")

	switch backend := os.Getenv("DETECTION_BACKEND"); backend {
	case "", BackendStub:
		return NewStub(), nil
	case BackendHTTP:
		if url == "" {
			return nil, errors.New("DETECTION_BACKEND_URL is required for the http backend")
		}
		return NewHTTP(url, nil), nil
	case BackendWebsocket:
		if url == "" {
			url = "ws://localhost:8000/api/v1/buildings/ws"
		}
		return NewWebsocket(url), nil
	default:
		return nil, fmt.Errorf("unknown DETECTION_BACKEND %q", backend)
	}
}

func resultMessage(buildings, illegal int, point entity.Coordinate) string {
	return fmt.Sprintf("Résultat : %d bâtiments détectés dont %d illégal sur le secteur géré par %s.",
		buildings, illegal, point)
}
