package page

import (
	"context"

	"BatiDetect/internal/entity"
	"BatiDetect/pkg/asset"

	"github.com/sirupsen/logrus"
)

type demoPage struct {
	assets asset.IAssetStore
	log    *logrus.Logger
}

func NewDemoPage(assets asset.IAssetStore, log *logrus.Logger) Renderer {
	return &demoPage{assets: assets, log: log}
}

// Render shows the canned demo only on the interaction that pressed the
// button; the next redraw goes back to the invitation.
func (p *demoPage) Render(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error) {
	if !passive(action) && action.Kind != entity.ActionStartDemo {
		return state, nil, ErrUnsupportedAction
	}

	view := &entity.View{}
	view.Add(
		text(entity.BlockTitle, demoTitle),
		text(entity.BlockMarkdown, demoIntro),
		button(demoButton, entity.ActionStartDemo),
	)

	if action.Kind == entity.ActionStartDemo {
		view.Add(
			columns(
				imageColumn(ctx, p.assets, p.log, "Image originale", entity.AssetDemoImage, ""),
				imageColumn(ctx, p.assets, p.log, "Masque de détection", entity.AssetDemoMask, ""),
			),
			text(entity.BlockSuccess, demoSuccess),
		)
	}

	return state, view, nil
}
