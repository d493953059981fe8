package detection

import "BatiDetect/internal/entity"

type AnalyzeRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Mode      string   `json:"mode" validate:"omitempty,oneof=manual map"`
}

type AnalyzeResponse struct {
	Data  entity.DetectionResult `json:"data"`
	Error string                 `json:"error,omitempty"`
}

type AnalysesResponse struct {
	Data []entity.AnalysisRecord `json:"data"`
}

// Analysis is what the service needs to run and journal one detection.
type Analysis struct {
	SessionID string
	Mode      entity.InputMode
	Point     entity.Coordinate
}
