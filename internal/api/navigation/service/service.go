package navigationService

import (
	"context"
	"fmt"

	"BatiDetect/internal/api/navigation"
	"BatiDetect/internal/api/page"
	"BatiDetect/internal/entity"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
)

const (
	AppTitle     = "Detection illegale de batiment"
	SidebarTitle = "Navigation"
	MenuLabel    = "Aller à"
)

type IShell interface {
	Dispatch(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error)
	Current(state entity.SessionState) entity.PageName
	Pages() []entity.PageName
	Menu(active entity.PageName) []entity.MenuItem
}

type shell struct {
	log       *logrus.Logger
	menu      []entity.PageName
	renderers map[entity.PageName]page.Renderer
}

// NewShell fails when the menu offers a page without a renderer or a
// renderer is unreachable from the menu.
func NewShell(log *logrus.Logger, menu []entity.PageName, renderers map[entity.PageName]page.Renderer) (IShell, error) {
	if len(menu) == 0 {
		return nil, navigation.ErrEmptyMenu
	}

	registered := make(map[entity.PageName]page.Renderer, len(renderers))
	for name, r := range renderers {
		registered[name] = r
	}

	for _, name := range menu {
		if _, ok := registered[name]; !ok {
			return nil, fmt.Errorf("%w: %q%s", navigation.ErrPageNotRegistered, name, hint(name, keys(registered)))
		}
	}
	if len(registered) != len(menu) {
		for name := range registered {
			if !contains(menu, name) {
				return nil, fmt.Errorf("%w: renderer %q is not in the menu%s", navigation.ErrPageNotRegistered, name, hint(name, menu))
			}
		}
	}

	return &shell{
		log:       log,
		menu:      append([]entity.PageName(nil), menu...),
		renderers: registered,
	}, nil
}

func keys(m map[entity.PageName]page.Renderer) []entity.PageName {
	out := make([]entity.PageName, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	return out
}

func contains(names []entity.PageName, name entity.PageName) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// hint names the closest known page, never substitutes it.
func hint(name entity.PageName, known []entity.PageName) string {
	best, bestDist := entity.PageName(""), -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(string(name), string(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist < 0 || bestDist > len(name)/2 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
