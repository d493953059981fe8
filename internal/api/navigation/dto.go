package navigation

import "BatiDetect/internal/entity"

type ActionRequest struct {
	Kind      string   `json:"kind" validate:"required,oneof=redraw navigate set_mode set_coordinate map_click analyze start_demo"`
	Page      string   `json:"page,omitempty"`
	Mode      string   `json:"mode,omitempty" validate:"omitempty,oneof=manual map"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type PageResponse struct {
	Name entity.PageName `json:"name"`
	Slug string          `json:"slug"`
}

type PagesResponse struct {
	Data []PageResponse `json:"data"`
}

type SessionResponse struct {
	Data entity.SessionState `json:"data"`
}

type ViewResponse struct {
	Data  *entity.View `json:"data,omitempty"`
	Error string       `json:"error,omitempty"`
}

// ResolvePage accepts either a slug ("modele") or a display name.
func ResolvePage(raw string) entity.PageName {
	if name, ok := entity.PageFromSlug(raw); ok {
		return name
	}
	return entity.PageName(raw)
}

func (r ActionRequest) ToAction() entity.Action {
	action := entity.Action{
		Kind:      entity.ActionKind(r.Kind),
		Mode:      entity.InputMode(r.Mode),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
	if r.Page != "" {
		action.Page = ResolvePage(r.Page)
	}
	return action
}
