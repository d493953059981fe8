package page

import (
	"context"
	"image"
	"io"
	"sync"

	"BatiDetect/internal/api/detection"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/asset"
	"BatiDetect/pkg/detector"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeAssets knows only the keys it was given.
type fakeAssets struct {
	present map[string]bool
}

func (f *fakeAssets) Stat(ctx context.Context, ref entity.AssetRef) (*entity.AssetInfo, error) {
	if !f.present[ref.Key] {
		return nil, asset.ErrAssetNotFound
	}
	return &entity.AssetInfo{Ref: ref, Size: 1, ContentType: "image/png"}, nil
}

func (f *fakeAssets) Open(ctx context.Context, ref entity.AssetRef) ([]byte, string, error) {
	if !f.present[ref.Key] {
		return nil, "", asset.ErrAssetNotFound
	}
	return []byte{1}, "image/png", nil
}

func (f *fakeAssets) Image(ctx context.Context, ref entity.AssetRef) (image.Image, error) {
	return nil, asset.ErrAssetNotFound
}

func (f *fakeAssets) Source() string { return "fake" }

func allAssets() *fakeAssets {
	present := map[string]bool{}
	for _, ref := range entity.Assets() {
		present[ref.Key] = true
	}
	return &fakeAssets{present: present}
}

// countingAnalyzer wraps the stub and records every call.
type countingAnalyzer struct {
	mu    sync.Mutex
	calls []detection.Analysis
	err   error
}

func (a *countingAnalyzer) Analyze(ctx context.Context, req detection.Analysis) (*entity.DetectionResult, error) {
	a.mu.Lock()
	a.calls = append(a.calls, req)
	a.mu.Unlock()

	if a.err != nil {
		return nil, a.err
	}
	return detector.NewStub().Analyze(ctx, req.Point)
}

func (a *countingAnalyzer) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

func f64(v float64) *float64 { return &v }

func blocksOfKind(blocks []entity.Block, kind entity.BlockKind) []entity.Block {
	var out []entity.Block
	for _, b := range blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
		for _, col := range b.Columns {
			out = append(out, blocksOfKind(col, kind)...)
		}
	}
	return out
}

func hasButton(blocks []entity.Block, action entity.ActionKind) bool {
	for _, b := range blocksOfKind(blocks, entity.BlockButton) {
		if b.Button.Action == action {
			return true
		}
	}
	return false
}
