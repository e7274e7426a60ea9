package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/service"
	"github.com/aussiebroadwan/profilefeed/pkg/feedsdk"
)

// FeedHandler serves /v1/feed.
type FeedHandler struct {
	crud crudHandler[domain.FeedItem, feedsdk.FeedItemRequest]
}

func NewFeedHandler(feed *service.FeedService) *FeedHandler {
	return &FeedHandler{crud: crudHandler[domain.FeedItem, feedsdk.FeedItemRequest]{
		list: feed.List,
		get:  feed.Get,
		create: func(ctx context.Context, actorID string, body feedsdk.FeedItemRequest) (domain.FeedItem, error) {
			return feed.Create(ctx, actorID, domain.FeedItemPatch{StatusText: body.StatusText})
		},
		update: func(ctx context.Context, actorID, id string, body feedsdk.FeedItemRequest, partial bool) (domain.FeedItem, error) {
			return feed.Update(ctx, actorID, id, domain.FeedItemPatch{StatusText: body.StatusText}, partial)
		},
		delete: feed.Delete,
		render: func(it domain.FeedItem) any { return toFeedItem(it) },
	}}
}

func toFeedItem(it domain.FeedItem) feedsdk.FeedItem {
	return feedsdk.FeedItem{
		ID:         it.ID,
		Owner:      it.OwnerID,
		StatusText: it.StatusText,
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

// HandleList handles GET /v1/feed
//
//	@Summary	List feed items
//	@Tags		Feed
//	@Produce	json
//	@Security	TokenAuth
//	@Param		owner	query		string	false	"only items by this profile ID"
//	@Param		search	query		string	false	"free-text filter on status text"
//	@Param		limit	query		int		false	"page size (default 100, max 500)"
//	@Param		offset	query		int		false	"rows to skip"
//	@Success	200		{array}		feedsdk.FeedItem	"newest first"
//	@Failure	400		{object}	feedsdk.APIError
//	@Failure	401		{object}	feedsdk.APIError
//	@Router		/v1/feed [get].
func (h *FeedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.crud.handleList(w, r)
}

// HandleGet handles GET /v1/feed/{id}
//
//	@Summary	Get feed item
//	@Tags		Feed
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id	path		string	true	"feed item ID"
//	@Success	200	{object}	feedsdk.FeedItem
//	@Failure	401	{object}	feedsdk.APIError
//	@Failure	404	{object}	feedsdk.APIError
//	@Router		/v1/feed/{id} [get].
func (h *FeedHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.crud.handleGet(w, r)
}

// HandleCreate handles POST /v1/feed
//
//	@Summary		Post status
//	@Description	The item is always owned by the caller. An owner in the body is ignored.
//	@Tags			Feed
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			request	body		feedsdk.FeedItemRequest	true	"status_text (1-255 characters)"
//	@Success		201		{object}	feedsdk.FeedItem
//	@Failure		400		{object}	feedsdk.APIError
//	@Failure		401		{object}	feedsdk.APIError
//	@Router			/v1/feed [post].
func (h *FeedHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.crud.handleCreate(w, r)
}

// HandleReplace handles PUT /v1/feed/{id}
//
//	@Summary	Replace feed item
//	@Tags		Feed
//	@Accept		json
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id		path		string					true	"feed item ID"
//	@Param		request	body		feedsdk.FeedItemRequest	true	"status_text"
//	@Success	200		{object}	feedsdk.FeedItem
//	@Failure	400		{object}	feedsdk.APIError
//	@Failure	401		{object}	feedsdk.APIError
//	@Failure	403		{object}	feedsdk.APIError
//	@Failure	404		{object}	feedsdk.APIError
//	@Router		/v1/feed/{id} [put].
func (h *FeedHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	h.crud.handleReplace(w, r)
}

// HandlePatch handles PATCH /v1/feed/{id}
//
//	@Summary	Update feed item
//	@Tags		Feed
//	@Accept		json
//	@Produce	json
//	@Security	TokenAuth
//	@Param		id		path		string					true	"feed item ID"
//	@Param		request	body		feedsdk.FeedItemRequest	true	"status_text"
//	@Success	200		{object}	feedsdk.FeedItem
//	@Failure	400		{object}	feedsdk.APIError
//	@Failure	401		{object}	feedsdk.APIError
//	@Failure	403		{object}	feedsdk.APIError
//	@Failure	404		{object}	feedsdk.APIError
//	@Router		/v1/feed/{id} [patch].
func (h *FeedHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.crud.handlePatch(w, r)
}

// HandleDelete handles DELETE /v1/feed/{id}
//
//	@Summary	Delete feed item
//	@Tags		Feed
//	@Security	TokenAuth
//	@Param		id	path	string	true	"feed item ID"
//	@Success	204
//	@Failure	401	{object}	feedsdk.APIError
//	@Failure	403	{object}	feedsdk.APIError
//	@Failure	404	{object}	feedsdk.APIError
//	@Router		/v1/feed/{id} [delete].
func (h *FeedHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.crud.handleDelete(w, r)
}
