package page

import (
	"context"
	"errors"
	"fmt"

	"BatiDetect/internal/api/detection"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/detector"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Analyzer is the only detection capability the page needs.
type Analyzer interface {
	Analyze(ctx context.Context, req detection.Analysis) (*entity.DetectionResult, error)
}

type modelPage struct {
	analyzer  Analyzer
	validator *validator.Validate
	log       *logrus.Logger
}

func NewModelPage(analyzer Analyzer, validator *validator.Validate, log *logrus.Logger) Renderer {
	return &modelPage{analyzer: analyzer, validator: validator, log: log}
}

func (p *modelPage) Render(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error) {
	if state.Mode == "" {
		state.Mode = entity.InputModeManual
	}

	var results []entity.Block

	switch action.Kind {
	case "", entity.ActionRedraw, entity.ActionNavigate:
	case entity.ActionSetMode:
		if action.Mode != entity.InputModeManual && action.Mode != entity.InputModeMap {
			return state, nil, fmt.Errorf("%w: %q", ErrInvalidMode, action.Mode)
		}
		state.Mode = action.Mode
	case entity.ActionSetCoordinate:
		point, err := p.coordinate(action)
		if err != nil {
			return state, nil, err
		}
		state.Latitude, state.Longitude = point.Latitude, point.Longitude
	case entity.ActionMapClick:
		point, err := p.coordinate(action)
		if err != nil {
			return state, nil, err
		}
		state.LastClick = &point
	case entity.ActionAnalyze:
		next, blocks, err := p.analyze(ctx, state, action)
		if err != nil {
			return state, nil, err
		}
		state, results = next, blocks
	default:
		return state, nil, ErrUnsupportedAction
	}

	view := &entity.View{}
	view.Add(text(entity.BlockTitle, modelTitle))

	if state.Mode == entity.InputModeMap {
		view.Add(text(entity.BlockMarkdown, modelStepsMap), modeRadio(state.Mode))
		view.Add(mapBlocks(state)...)
	} else {
		view.Add(text(entity.BlockMarkdown, modelStepsManual), modeRadio(state.Mode))
		view.Add(manualBlocks(state)...)
	}
	view.Add(results...)

	return state, view, nil
}

func (p *modelPage) coordinate(action entity.Action) (entity.Coordinate, error) {
	point, ok := action.Coordinate()
	if !ok {
		return entity.Coordinate{}, ErrMissingCoordinate
	}
	if err := p.validator.Struct(point); err != nil {
		return entity.Coordinate{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, point)
	}
	return point, nil
}

// analyze never calls the analyzer without a defined coordinate: in map mode
// an analyze before any click only yields the prompt.
func (p *modelPage) analyze(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, []entity.Block, error) {
	var point entity.Coordinate
	var blocks []entity.Block

	if state.Mode == entity.InputModeMap {
		if state.LastClick == nil {
			return state, nil, nil
		}
		point = *state.LastClick
	} else {
		if _, ok := action.Coordinate(); ok {
			typed, err := p.coordinate(action)
			if err != nil {
				return state, nil, err
			}
			state.Latitude, state.Longitude = typed.Latitude, typed.Longitude
		}
		point = state.ManualCoordinate()
		blocks = append(blocks, text(entity.BlockInfo, analyzeRunning))
	}

	result, err := p.analyzer.Analyze(ctx, detection.Analysis{
		SessionID: state.ID,
		Mode:      state.Mode,
		Point:     point,
	})
	if err != nil {
		return state, append(blocks, failureBlock(err, point)), nil
	}

	if state.Mode == entity.InputModeMap {
		blocks = append(blocks, text(entity.BlockSuccess, fmt.Sprintf(selectedFormat, point)))
	}
	blocks = append(blocks, text(entity.BlockText, result.Message))

	return state, blocks, nil
}

func failureBlock(err error, point entity.Coordinate) entity.Block {
	switch {
	case detector.IsTransient(err):
		return text(entity.BlockWarning, backendRetry)
	case errors.Is(err, detector.ErrNoCoverage):
		return text(entity.BlockError, backendNoCoverage)
	case errors.Is(err, detector.ErrInvalidCoordinate), errors.Is(err, detection.ErrInvalidCoordinate):
		return text(entity.BlockError, fmt.Sprintf(backendInvalid, point))
	default:
		return text(entity.BlockError, backendFailed)
	}
}

func modeRadio(mode entity.InputMode) entity.Block {
	return entity.Block{
		Kind: entity.BlockRadio,
		Radio: &entity.Radio{
			Name:   "mode",
			Label:  "Mode de saisie",
			Action: entity.ActionSetMode,
			Options: []entity.Option{
				{Value: string(entity.InputModeManual), Label: "Saisie manuelle", Selected: mode != entity.InputModeMap},
				{Value: string(entity.InputModeMap), Label: "Carte interactive", Selected: mode == entity.InputModeMap},
			},
		},
	}
}

func manualBlocks(state entity.SessionState) []entity.Block {
	return []entity.Block{
		{Kind: entity.BlockNumberInput, Input: &entity.NumberInput{
			Name: "latitude", Label: "Latitude", Value: state.Latitude,
			Min: entity.MinLatitude, Max: entity.MaxLatitude, Format: "%.6f",
		}},
		{Kind: entity.BlockNumberInput, Input: &entity.NumberInput{
			Name: "longitude", Label: "Longitude", Value: state.Longitude,
			Min: entity.MinLongitude, Max: entity.MaxLongitude, Format: "%.6f",
		}},
		button(analyzeLabel, entity.ActionAnalyze),
	}
}

func mapBlocks(state entity.SessionState) []entity.Block {
	center := entity.Coordinate{Latitude: entity.DefaultLatitude, Longitude: entity.DefaultLongitude}
	if state.LastClick != nil {
		center = *state.LastClick
	}

	blocks := []entity.Block{{
		Kind: entity.BlockMap,
		Map:  &entity.MapWidget{Center: center, Zoom: 12, LastClick: state.LastClick},
	}}

	if state.LastClick == nil {
		return append(blocks, text(entity.BlockInfo, mapPrompt))
	}

	return append(blocks,
		text(entity.BlockText, fmt.Sprintf(lastClickText, *state.LastClick)),
		button(analyzeLabel, entity.ActionAnalyze),
	)
}
