package assetService

import (
	"context"
	"image/color"
	"os"
	"strconv"
	"sync"

	assetDomain "BatiDetect/internal/api/asset"
	"BatiDetect/internal/entity"
	assetStore "BatiDetect/pkg/asset"

	"github.com/sirupsen/logrus"
)

type IAssetService interface {
	List(ctx context.Context) ([]entity.AssetInfo, error)
	Open(ctx context.Context, key string) (*assetDomain.Content, error)
	DemoOverlay(ctx context.Context) (*assetDomain.Content, error)
}

type assetService struct {
	log       *logrus.Logger
	store     assetStore.IAssetStore
	highlight color.NRGBA
	opacity   float64

	mu      sync.Mutex
	overlay []byte
}

// NewAssetService reads MASK_HIGHLIGHT_COLOR and MASK_OPACITY (0.5).
func NewAssetService(log *logrus.Logger, store assetStore.IAssetStore) (IAssetService, error) {
	highlight, err := assetStore.ParseHighlight(os.Getenv("MASK_HIGHLIGHT_COLOR"))
	if err != nil {
		return nil, err
	}

	return &assetService{
		log:       log,
		store:     store,
		highlight: highlight,
		opacity:   opacityFromEnv(),
	}, nil
}

func opacityFromEnv() float64 {
	opacity, err := strconv.ParseFloat(os.Getenv("MASK_OPACITY"), 64)
	if err != nil || opacity <= 0 || opacity > 1 {
		return 0.5
	}
	return opacity
}
