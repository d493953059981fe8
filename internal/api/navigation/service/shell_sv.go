package navigationService

import (
	"context"
	"fmt"

	"BatiDetect/internal/api/navigation"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/log"
)

func (s *shell) Pages() []entity.PageName {
	return append([]entity.PageName(nil), s.menu...)
}

// Current is the single read accessor for the selected page. A fresh
// session has no selection yet and lands on the first menu entry.
func (s *shell) Current(state entity.SessionState) entity.PageName {
	if state.Page == "" {
		return s.menu[0]
	}
	return state.Page
}

func (s *shell) Menu(active entity.PageName) []entity.MenuItem {
	items := make([]entity.MenuItem, 0, len(s.menu))
	for _, name := range s.menu {
		items = append(items, entity.MenuItem{
			Name:   name,
			Slug:   name.Slug(),
			Active: name == active,
		})
	}
	return items
}

// Dispatch runs one interaction cycle: apply navigation, then invoke exactly
// one renderer for the selected page.
func (s *shell) Dispatch(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error) {
	state.Page = s.Current(state)

	if action.Kind == entity.ActionNavigate {
		if _, ok := s.renderers[action.Page]; !ok {
			return state, nil, fmt.Errorf("%w: %q", navigation.ErrUnknownPage, action.Page)
		}
		state.Page = action.Page
	}

	renderer, ok := s.renderers[state.Page]
	if !ok {
		log.WithRequestID(s.log, ctx).WithFields(log.Fields{
			"page": state.Page,
		}).Error("Selected page has no renderer")
		return state, nil, fmt.Errorf("%w: %q", navigation.ErrPageNotRegistered, state.Page)
	}

	next, view, err := renderer.Render(ctx, state, action)
	if err != nil {
		return state, nil, err
	}

	view.Page = next.Page
	view.PageTitle = AppTitle
	view.Sidebar = SidebarTitle
	view.Menu = s.Menu(next.Page)

	log.WithRequestID(s.log, ctx).WithFields(log.Fields{
		"page":   next.Page,
		"action": action.Kind,
		"blocks": len(view.Blocks),
	}).Debug("Page rendered")

	return next, view, nil
}
