package assetService

import (
	"context"
	"errors"
	"fmt"

	assetDomain "BatiDetect/internal/api/asset"
	"BatiDetect/internal/entity"
	assetStore "BatiDetect/pkg/asset"
	"BatiDetect/pkg/log"
)

func (s *assetService) List(ctx context.Context) ([]entity.AssetInfo, error) {
	refs := entity.Assets()
	infos := make([]entity.AssetInfo, 0, len(refs))
	for _, ref := range refs {
		info, err := s.store.Stat(ctx, ref)
		if errors.Is(err, assetStore.ErrAssetNotFound) {
			infos = append(infos, entity.AssetInfo{Ref: ref})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", assetDomain.ErrInternalServerError, err)
		}
		info.Available = true
		infos = append(infos, *info)
	}
	return infos, nil
}

func (s *assetService) Open(ctx context.Context, key string) (*assetDomain.Content, error) {
	ref, ok := entity.AssetByKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", assetDomain.ErrAssetNotFound, key)
	}

	body, contentType, err := s.store.Open(ctx, ref)
	if err != nil {
		return nil, s.wrap(err)
	}

	return &assetDomain.Content{Body: body, ContentType: contentType}, nil
}

// DemoOverlay composes demo_mask over demo_image once and serves the cached
// PNG afterwards; both inputs are fixed for the process lifetime.
func (s *assetService) DemoOverlay(ctx context.Context) (*assetDomain.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlay == nil {
		base, err := s.store.Image(ctx, entity.AssetDemoImage)
		if err != nil {
			return nil, s.wrap(err)
		}
		mask, err := s.store.Image(ctx, entity.AssetDemoMask)
		if err != nil {
			return nil, s.wrap(err)
		}

		png, err := assetStore.EncodePNG(assetStore.Overlay(base, mask, s.highlight, s.opacity))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", assetDomain.ErrOverlayFailed, err)
		}

		log.WithRequestID(s.log, ctx).WithFields(log.Fields{
			"source": s.store.Source(),
			"bytes":  len(png),
		}).Info("Demo overlay composed")

		s.overlay = png
	}

	return &assetDomain.Content{Body: s.overlay, ContentType: "image/png"}, nil
}

func (s *assetService) wrap(err error) error {
	if errors.Is(err, assetStore.ErrAssetNotFound) {
		return fmt.Errorf("%w: %w", assetDomain.ErrAssetNotFound, err)
	}
	return fmt.Errorf("%w: %w", assetDomain.ErrInternalServerError, err)
}
