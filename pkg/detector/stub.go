package detector

import (
	"context"
	"fmt"

	"BatiDetect/internal/entity"
)

const (
	stubBuildings = 3
	stubIllegal   = 1
)

// SimulatedMessage is the canned text the stub returns for point.
func SimulatedMessage(point entity.Coordinate) string {
	return fmt.Sprintf("Résultat simulé : %d bâtiments détectés dont %d illégal sur le secteur géré par %.6f, %.6f.",
		stubBuildings, stubIllegal, point.Latitude, point.Longitude)
}

// stub performs no detection: it echoes the coordinate into a fixed text.
type stub struct{}

func NewStub() IDetector {
	return stub{}
}

func (stub) Name() string {
	return BackendStub
}

func (stub) Analyze(ctx context.Context, point entity.Coordinate) (*entity.DetectionResult, error) {
	if !point.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoordinate, point)
	}

	return &entity.DetectionResult{
		Message:   SimulatedMessage(point),
		Buildings: stubBuildings,
		Illegal:   stubIllegal,
		Simulated: true,
		Backend:   BackendStub,
		Point:     point,
	}, nil
}
