package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/service"
	"github.com/aussiebroadwan/profilefeed/pkg/feedsdk"
	"github.com/aussiebroadwan/profilefeed/pkg/httpx"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

// LoginHandler swaps credentials for a token and revokes it again.
type LoginHandler struct {
	TokenService *service.TokenService
}

// HandleLogin handles POST /v1/login
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an opaque token. Any previous token for the account is replaced.
//	@Description	The body may be JSON or application/x-www-form-urlencoded.
//	@Tags			Auth
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		feedsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	feedsdk.TokenResponse
//	@Failure		400		{object}	feedsdk.APIError
//	@Failure		401		{object}	feedsdk.APIError	"invalid_credentials"
//	@Failure		429		{object}	feedsdk.APIError
//	@Router			/v1/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	issued, err := h.TokenService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			feedsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, feedsdk.TokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}

// HandleLogout handles POST /v1/logout
//
//	@Summary	Log out
//	@Tags		Auth
//	@Security	TokenAuth
//	@Success	204
//	@Failure	401	{object}	feedsdk.APIError
//	@Router		/v1/logout [post].
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication)
		return
	}

	if err := h.TokenService.Revoke(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeLogin(w http.ResponseWriter, r *http.Request) (feedsdk.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			slogx.FromContext(r.Context()).Debug("login form rejected", "error", err)
			return feedsdk.LoginRequest{}, fmt.Errorf("%w: %v", httpx.ErrBadRequestBody, err)
		}
		return feedsdk.LoginRequest{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}, nil
	}

	var req feedsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return feedsdk.LoginRequest{}, err
	}
	return req, nil
}
