package navigation

import (
	"BatiDetect/pkg/response"
	"net/http"
)

var (
	// ErrUnknownPage is a client asking for a page outside the menu.
	ErrUnknownPage = response.NewError(http.StatusBadRequest, "unknown page")
	// ErrPageNotRegistered means the menu and the renderer registry disagree.
	ErrPageNotRegistered = response.NewError(http.StatusInternalServerError, "page has no registered renderer")
	ErrEmptyMenu         = response.NewError(http.StatusInternalServerError, "navigation menu is empty")
	ErrInvalidAction     = response.NewError(http.StatusBadRequest, "invalid action")
)
