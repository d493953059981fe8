package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"BatiDetect/internal/entity"

	"github.com/disintegration/imaging"
)

var ErrAssetNotFound = errors.New("asset not found")

// IAssetStore serves the fixed, read-only images bundled with the app.
type IAssetStore interface {
	Stat(ctx context.Context, ref entity.AssetRef) (*entity.AssetInfo, error)
	Open(ctx context.Context, ref entity.AssetRef) ([]byte, string, error)
	Image(ctx context.Context, ref entity.AssetRef) (image.Image, error)
	Source() string
}

// New picks the backend from ASSET_SOURCE ("local" by default, or "s3").
func New() (IAssetStore, error) {
	switch source := os.Getenv("ASSET_SOURCE"); source {
	case "", "local":
		root := os.Getenv("ASSET_DIR")
		if root == "" {
			root = "."
		}
		return NewLocal(root), nil
	case "s3":
		return NewS3()
	default:
		return nil, fmt.Errorf("unknown ASSET_SOURCE %q", source)
	}
}

func notFound(ref entity.AssetRef) error {
	return fmt.Errorf("%w: %s", ErrAssetNotFound, ref.Path)
}

func contentTypeFor(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "application/octet-stream"
}

// imageCache keeps decoded images by asset key. Assets never change while
// the process runs, so entries are never evicted.
type imageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

func newImageCache() *imageCache {
	return &imageCache{images: make(map[string]image.Image)}
}

func (c *imageCache) load(ref entity.AssetRef, read func() ([]byte, error)) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[ref.Key]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := read()
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ref.Path, err)
	}

	c.mu.Lock()
	c.images[ref.Key] = img
	c.mu.Unlock()

	return img, nil
}
