package page

import (
	"BatiDetect/pkg/response"
	"net/http"
)

var (
	ErrUnsupportedAction = response.NewError(http.StatusBadRequest, "action not supported on this page")
	ErrMissingCoordinate = response.NewError(http.StatusBadRequest, "latitude and longitude are required")
	ErrInvalidCoordinate = response.NewError(http.StatusBadRequest, "coordinate out of range")
	ErrInvalidMode       = response.NewError(http.StatusBadRequest, "unknown input mode")
)
