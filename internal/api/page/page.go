package page

import (
	"context"

	"BatiDetect/internal/entity"
)

// Renderer draws one page. It must not keep state between calls: everything
// it needs arrives in state and action, and the next state is returned.
type Renderer interface {
	Render(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error)
}

type RenderFunc func(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error)

func (f RenderFunc) Render(ctx context.Context, state entity.SessionState, action entity.Action) (entity.SessionState, *entity.View, error) {
	return f(ctx, state, action)
}

// passive reports whether action only asks for a redraw of the page.
func passive(action entity.Action) bool {
	return action.Kind == "" || action.Kind == entity.ActionRedraw || action.Kind == entity.ActionNavigate
}
