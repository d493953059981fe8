package page

import (
	"context"
	"fmt"

	"BatiDetect/internal/entity"
	"BatiDetect/pkg/asset"

	"github.com/sirupsen/logrus"
)

func text(kind entity.BlockKind, s string) entity.Block {
	return entity.Block{Kind: kind, Text: s}
}

func columns(cols ...[]entity.Block) entity.Block {
	return entity.Block{Kind: entity.BlockColumns, Columns: cols}
}

func button(label string, action entity.ActionKind) entity.Block {
	return entity.Block{Kind: entity.BlockButton, Button: &entity.Button{Label: label, Action: action}}
}

func AssetURL(ref entity.AssetRef) string {
	return "/assets/" + ref.Key
}

// imageColumn renders a subheader and the image, or an error block in place
// of the image when the asset cannot be read. Other columns are unaffected.
func imageColumn(ctx context.Context, store asset.IAssetStore, log *logrus.Logger, title string, ref entity.AssetRef, caption string) []entity.Block {
	blocks := []entity.Block{text(entity.BlockSubheader, title)}

	if _, err := store.Stat(ctx, ref); err != nil {
		log.WithFields(logrus.Fields{
			"asset": ref.Path,
			"error": err.Error(),
		}).Warn("Asset unavailable")
		return append(blocks, text(entity.BlockError, fmt.Sprintf(assetLoadError, ref.Path)))
	}

	return append(blocks, entity.Block{
		Kind:    entity.BlockImage,
		Caption: caption,
		Image:   &entity.ImageBlock{Asset: ref, URL: AssetURL(ref)},
	})
}
