package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/permission"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/service"
	"github.com/aussiebroadwan/profilefeed/pkg/feedsdk"
	"github.com/aussiebroadwan/profilefeed/pkg/httpx"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

// writeServiceError maps a service error onto its wire form. Anything
// unrecognised is logged and hidden behind server_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		feedsdk.NewValidationError(verr.Fields).WriteError(w)
	case errors.Is(err, httpx.ErrBadRequestBody), errors.Is(err, errBadQuery):
		feedsdk.NewAPIError(http.StatusBadRequest, feedsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrAuthentication):
		w.Header().Set("WWW-Authenticate", `Token error="invalid_token"`)
		feedsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, permission.ErrDenied):
		feedsdk.ErrPermissionDenied.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		feedsdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		feedsdk.ErrServerError.WriteError(w)
	}
}
