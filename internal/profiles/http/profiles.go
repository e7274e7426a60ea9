package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/service"
	"github.com/aussiebroadwan/profilefeed/pkg/feedsdk"
)

// ProfilesHandler serves /v1/profiles.
type ProfilesHandler struct {
	crud crudHandler[domain.User, feedsdk.ProfileUpdate]
}

func NewProfilesHandler(accounts *service.AccountService, profiles *service.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{crud: crudHandler[domain.User, feedsdk.ProfileUpdate]{
		list: profiles.List,
		get:  profiles.Get,
		create: func(ctx context.Context, _ string, body feedsdk.ProfileUpdate) (domain.User, error) {
			return accounts.CreateAccount(ctx, deref(body.Email), deref(body.Name), deref(body.Password))
		},
		update: func(ctx context.Context, actorID, id string, body feedsdk.ProfileUpdate, partial bool) (domain.User, error) {
			return profiles.Update(ctx, actorID, id, domain.ProfilePatch{
				Email:    body.Email,
				Name:     body.Name,
				Password: body.Password,
			}, partial)
		},
		delete: profiles.Delete,
		render: func(u domain.User) any { return toProfile(u) },
	}}
}

func toProfile(u domain.User) feedsdk.Profile {
	return feedsdk.Profile{ID: u.ID, Email: u.Email, Name: u.Name}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// HandleRegister handles POST /v1/profiles
//
//	@Summary		Register
//	@Description	Creates an active, unprivileged profile. The email is case-folded before it is stored and must be unique.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		feedsdk.RegisterRequest	true	"email, name, password"
//	@Success		201		{object}	feedsdk.Profile
//	@Failure		400		{object}	feedsdk.APIError	"validation_error with per-field details"
//	@Failure		429		{object}	feedsdk.APIError
//	@Router			/v1/profiles [post].
func (h *ProfilesHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.crud.handleCreate(w, r)
}

// HandleList handles GET /v1/profiles
//
//	@Summary		List profiles
//	@Description	Every whitespace or comma separated term in search must match the name or email, case-insensitively.
//	@Tags			Profiles
//	@Produce		json
//	@Security		TokenAuth
//	@Param			search	query		string	false	"free-text filter"
//	@Param			limit	query		int		false	"page size (default 100, max 500)"
//	@Param			offset	query		int		false	"rows to skip"
//	@Success		200		{array}		feedsdk.Profile
//	@Failure		400		{object}	feedsdk.APIError
//	@Failure		401		{object}	feedsdk.APIError	"token invalid, or missing while the directory is private"
//	@Router			/v1/profiles [get].
func (h *ProfilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.crud.handleList(w, r)
}

// HandleGet handles GET /v1/profiles/{id}
//
//	@Summary	Get profile
//	@Tags		Profiles
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id	path		string	true	"profile ID"
//	@Success	200	{object}	feedsdk.Profile
//	@Failure	401	{object}	feedsdk.APIError
//	@Failure	404	{object}	feedsdk.APIError
//	@Router		/v1/profiles/{id} [get].
func (h *ProfilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.crud.handleGet(w, r)
}

// HandleReplace handles PUT /v1/profiles/{id}
//
//	@Summary		Replace profile
//	@Description	Email and name are required. A supplied password is rehashed. Only the owner may do this.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			id		path		string					true	"profile ID"
//	@Param			request	body		feedsdk.ProfileUpdate	true	"email, name, optional password"
//	@Success		200		{object}	feedsdk.Profile
//	@Failure		400		{object}	feedsdk.APIError
//	@Failure		401		{object}	feedsdk.APIError
//	@Failure		403		{object}	feedsdk.APIError
//	@Failure		404		{object}	feedsdk.APIError
//	@Router			/v1/profiles/{id} [put].
func (h *ProfilesHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	h.crud.handleReplace(w, r)
}

// HandlePatch handles PATCH /v1/profiles/{id}
//
//	@Summary	Update profile
//	@Tags		Profiles
//	@Accept		json
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id		path		string					true	"profile ID"
//	@Param		request	body		feedsdk.ProfileUpdate	true	"fields to change"
//	@Success	200		{object}	feedsdk.Profile
//	@Failure	400		{object}	feedsdk.APIError
//	@Failure	401		{object}	feedsdk.APIError
//	@Failure	403		{object}	feedsdk.APIError
//	@Failure	404		{object}	feedsdk.APIError
//	@Router		/v1/profiles/{id} [patch].
func (h *ProfilesHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.crud.handlePatch(w, r)
}

// HandleDelete handles DELETE /v1/profiles/{id}
//
//	@Summary		Delete profile
//	@Description	Removes the profile with its token and feed items.
//	@Tags			Profiles
//	@Security		TokenAuth
//	@Param			id	path	string	true	"profile ID"
//	@Success		204
//	@Failure		401	{object}	feedsdk.APIError
//	@Failure		403	{object}	feedsdk.APIError
//	@Failure		404	{object}	feedsdk.APIError
//	@Router			/v1/profiles/{id} [delete].
func (h *ProfilesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.crud.handleDelete(w, r)
}
