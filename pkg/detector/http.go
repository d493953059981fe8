package detector

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"BatiDetect/internal/entity"

	jsoniter "github.com/json-iterator/go"
)

type analyzeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type analyzeResponse struct {
	Buildings int    `json:"buildings"`
	Illegal   int    `json:"illegal"`
	Message   string `json:"message,omitempty"`
}

type backendError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// HealthChecker is implemented by backends that can be checked at start-up.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

type httpDetector struct {
	url    string
	client *http.Client
}

func NewHTTP(url string, client *http.Client) IDetector {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &httpDetector{
		url:    strings.TrimRight(url, "/"),
		client: client,
	}
}

func (d *httpDetector) Name() string {
	return BackendHTTP
}

func (d *httpDetector) Analyze(ctx context.Context, point entity.Coordinate) (*entity.DetectionResult, error) {
	if !point.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoordinate, point)
	}

	body, err := jsoniter.Marshal(analyzeRequest{Latitude: point.Latitude, Longitude: point.Longitude})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, payload)
	}

	var result analyzeResponse
	if err := jsoniter.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	message := result.Message
	if message == "" {
		message = resultMessage(result.Buildings, result.Illegal, point)
	}

	return &entity.DetectionResult{
		Message:   message,
		Buildings: result.Buildings,
		Illegal:   result.Illegal,
		Backend:   BackendHTTP,
		Point:     point,
	}, nil
}

func classifyStatus(status int, payload []byte) error {
	var be backendError
	_ = jsoniter.Unmarshal(payload, &be)

	switch {
	case be.Code == "no_coverage" || status == http.StatusNotFound:
		return fmt.Errorf("%w (status %d)", ErrNoCoverage, status)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w (status %d): %s", ErrInvalidCoordinate, status, be.Error)
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w (status %d)", ErrBackendUnavailable, status)
	default:
		return fmt.Errorf("detection backend answered status %d", status)
	}
}

func (d *httpDetector) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}
