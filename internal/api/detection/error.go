package detection

import (
	"BatiDetect/pkg/response"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest          = response.NewError(http.StatusBadRequest, "bad request")
	ErrInvalidCoordinate   = response.NewError(http.StatusBadRequest, "coordinate out of range")
	ErrNoCoverage          = response.NewError(http.StatusUnprocessableEntity, "no imagery coverage for this area")
	ErrBackendUnavailable  = response.NewError(http.StatusServiceUnavailable, "detection backend unavailable")
)

var ErrJournalDisabled = response.NewError(http.StatusNotFound, "analysis journal is not enabled")
