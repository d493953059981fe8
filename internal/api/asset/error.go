package asset

import (
	"BatiDetect/pkg/response"
	"net/http"
)

var (
	ErrAssetNotFound       = response.NewError(http.StatusNotFound, "asset not found")
	ErrOverlayFailed       = response.NewError(http.StatusInternalServerError, "failed to compose overlay")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
