package navigationHandler

import (
	"context"
	"errors"
	"fmt"

	"BatiDetect/internal/api/navigation"
	"BatiDetect/internal/api/page"
	"BatiDetect/internal/entity"
	"BatiDetect/pkg/session"

	"github.com/go-playground/validator/v10"
)

// dispatch is the one interaction cycle shared by every transport: load the
// session, run the shell, save the next state.
//
// An action that names the page it was issued from runs on that page. A tab
// left open on another page moves the session back there first, within the
// same cycle.
func (h *NavigationHandler) dispatch(ctx context.Context, sessionID string, action entity.Action) (entity.SessionState, *entity.View, error) {
	state, err := session.LoadOrNew(ctx, h.sessions, sessionID)
	if err != nil {
		return entity.SessionState{}, nil, fmt.Errorf("failed to load session: %w", err)
	}

	if action.Kind != entity.ActionNavigate && action.Page != "" && h.shell.Current(state) != action.Page {
		state, _, err = h.shell.Dispatch(ctx, state, entity.Action{Kind: entity.ActionNavigate, Page: action.Page})
		if err != nil {
			return state, nil, err
		}
	}

	next, view, err := h.shell.Dispatch(ctx, state, action)
	if err != nil {
		return state, nil, err
	}

	if err := h.sessions.Save(ctx, next); err != nil {
		return next, nil, fmt.Errorf("failed to save session: %w", err)
	}

	return next, view, nil
}

func (h *NavigationHandler) toAction(req navigation.ActionRequest) (entity.Action, error) {
	if err := h.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.StructField() == "Latitude" || fe.StructField() == "Longitude" {
					return entity.Action{}, fmt.Errorf("%w: %v", page.ErrInvalidCoordinate, err)
				}
			}
		}
		return entity.Action{}, fmt.Errorf("%w: %v", navigation.ErrInvalidAction, err)
	}

	action := req.ToAction()
	if action.Kind == entity.ActionNavigate {
		if action.Page == "" {
			return entity.Action{}, fmt.Errorf("%w: navigate needs a page", navigation.ErrInvalidAction)
		}
	}
	return action, nil
}

// userMessage is the French text shown in place of a rejected action.
func userMessage(err error) string {
	switch {
	case errors.Is(err, navigation.ErrUnknownPage):
		return "Page inconnue."
	case errors.Is(err, page.ErrInvalidCoordinate):
		return "Coordonnées invalides : la latitude doit être comprise entre -90 et 90 et la longitude entre -180 et 180."
	case errors.Is(err, page.ErrMissingCoordinate):
		return "Veuillez renseigner la latitude et la longitude."
	case errors.Is(err, page.ErrInvalidMode):
		return "Mode de saisie inconnu."
	case errors.Is(err, page.ErrUnsupportedAction):
		return "Cette action n'est pas disponible sur cette page."
	default:
		return "Action invalide."
	}
}
