package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"BatiDetect/internal/entity"
)

type localStore struct {
	root  string
	cache *imageCache
}

func NewLocal(root string) IAssetStore {
	return &localStore{
		root:  root,
		cache: newImageCache(),
	}
}

func (s *localStore) Source() string {
	return "local"
}

func (s *localStore) path(ref entity.AssetRef) string {
	return filepath.Join(s.root, filepath.FromSlash(ref.Path))
}

func (s *localStore) Stat(ctx context.Context, ref entity.AssetRef) (*entity.AssetInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path(ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(ref)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", ref.Path, err)
	}
	if info.IsDir() {
		return nil, notFound(ref)
	}

	return &entity.AssetInfo{
		Ref:         ref,
		Size:        info.Size(),
		ContentType: contentTypeFor(ref.Path, nil),
	}, nil
}

func (s *localStore) Open(ctx context.Context, ref entity.AssetRef) ([]byte, string, error) {
	data, err := s.read(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	return data, contentTypeFor(ref.Path, data), nil
}

func (s *localStore) Image(ctx context.Context, ref entity.AssetRef) (image.Image, error) {
	return s.cache.load(ref, func() ([]byte, error) {
		return s.read(ctx, ref)
	})
}

func (s *localStore) read(ctx context.Context, ref entity.AssetRef) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(ref)
		}
		return nil, fmt.Errorf("failed to read %s: %w", ref.Path, err)
	}
	return data, nil
}
