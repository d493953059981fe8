package entity

type InputMode string

const (
	InputModeManual InputMode = "manual"
	InputModeMap    InputMode = "map"
)

// SessionState is everything a redraw may read. Renderers receive it by
// value and hand back the next state.
type SessionState struct {
	ID        string      `json:"id"`
	Page      PageName    `json:"page"`
	Mode      InputMode   `json:"mode"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	LastClick *Coordinate `json:"last_click,omitempty"`
}

func NewSessionState(id string) SessionState {
	return SessionState{
		ID:        id,
		Page:      PageContext,
		Mode:      InputModeManual,
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
	}
}

func (s SessionState) ManualCoordinate() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

type ActionKind string

const (
	ActionRedraw        ActionKind = "redraw"
	ActionNavigate      ActionKind = "navigate"
	ActionSetMode       ActionKind = "set_mode"
	ActionSetCoordinate ActionKind = "set_coordinate"
	ActionMapClick      ActionKind = "map_click"
	ActionAnalyze       ActionKind = "analyze"
	ActionStartDemo     ActionKind = "start_demo"
)

// Action is one user interaction. Fields other than Kind are read only by
// the kinds that need them.
type Action struct {
	Kind      ActionKind `json:"kind"`
	Page      PageName   `json:"page,omitempty"`
	Mode      InputMode  `json:"mode,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
}

func (a Action) Coordinate() (Coordinate, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *a.Latitude, Longitude: *a.Longitude}, true
}

func Redraw() Action {
	return Action{Kind: ActionRedraw}
}
