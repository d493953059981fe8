package page

import (
	"context"

	"BatiDetect/internal/entity"
	"BatiDetect/pkg/asset"

	"github.com/sirupsen/logrus"
)

type contextPage struct {
	assets asset.IAssetStore
	log    *logrus.Logger
}

func NewContextPage(assets asset.IAssetStore, log *logrus.Logger) Renderer {
	return &contextPage{assets: assets, log: log}
}

func (p *contextPage) Render(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error) {
	if !passive(action) {
		return state, nil, ErrUnsupportedAction
	}

	view := &entity.View{}
	view.Add(
		text(entity.BlockTitle, contextTitle),
		text(entity.BlockHeader, "Présentation du projet"),
		text(entity.BlockMarkdown, contextIntro),
		text(entity.BlockSubheader, "1. Source des données"),
		text(entity.BlockMarkdown, contextSources),
		text(entity.BlockSubheader, "2. Exploration des modèles"),
		text(entity.BlockMarkdown, contextModels),
		text(entity.BlockSubheader, "3. Choix du modèle"),
		text(entity.BlockMarkdown, contextChoice),
		text(entity.BlockHeader, "Illustrations du contexte"),
		columns(
			imageColumn(ctx, p.assets, p.log, "Image aérienne", entity.AssetAerial, "Vue aérienne d'une zone urbaine"),
			imageColumn(ctx, p.assets, p.log, "Carte cadastrale", entity.AssetCadastral, "Carte cadastrale officielle"),
		),
	)

	return state, view, nil
}
