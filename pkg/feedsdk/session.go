package feedsdk

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Session is an authenticated client. The token stays valid until the user
// logs in again, logs out or (when configured) it expires.
type Session struct {
	client *Client

	mu    sync.RWMutex
	token string
}

// Token returns the raw token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, s.Token(), body)
}

// Logout revokes the session's token. The session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodPost, "/v1/logout", nil)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

// ============================================================================
// Profiles
// ============================================================================

func (s *Session) ListProfiles(ctx context.Context, opts ListOptions) ([]Profile, error) {
	return listProfiles(ctx, s.client, s.Token(), opts)
}

func (s *Session) GetProfile(ctx context.Context, id string) (*Profile, error) {
	return getProfile(ctx, s.client, s.Token(), id)
}

// ReplaceProfile sends a PUT. Email and name are required.
func (s *Session) ReplaceProfile(ctx context.Context, id string, req ProfileUpdate) (*Profile, error) {
	return s.writeProfile(ctx, http.MethodPut, id, req)
}

// UpdateProfile sends a PATCH; only non-nil fields change.
func (s *Session) UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*Profile, error) {
	return s.writeProfile(ctx, http.MethodPatch, id, req)
}

func (s *Session) writeProfile(ctx context.Context, method, id string, req ProfileUpdate) (*Profile, error) {
	resp, err := s.do(ctx, method, "/v1/profiles/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) DeleteProfile(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/profiles/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Feed
// ============================================================================

func (s *Session) ListFeed(ctx context.Context, opts ListOptions) ([]FeedItem, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/feed"+opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var items []FeedItem
	if err := decodeJSON(resp, &items, http.StatusOK); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Session) GetFeedItem(ctx context.Context, id string) (*FeedItem, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/feed/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var item FeedItem
	if err := decodeJSON(resp, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// PostStatus creates a feed item owned by the session's user.
func (s *Session) PostStatus(ctx context.Context, text string) (*FeedItem, error) {
	return s.writeFeedItem(ctx, http.MethodPost, "/v1/feed", FeedItemRequest{StatusText: &text}, http.StatusCreated)
}

func (s *Session) ReplaceFeedItem(ctx context.Context, id string, req FeedItemRequest) (*FeedItem, error) {
	return s.writeFeedItem(ctx, http.MethodPut, "/v1/feed/"+url.PathEscape(id), req, http.StatusOK)
}

func (s *Session) UpdateFeedItem(ctx context.Context, id string, req FeedItemRequest) (*FeedItem, error) {
	return s.writeFeedItem(ctx, http.MethodPatch, "/v1/feed/"+url.PathEscape(id), req, http.StatusOK)
}

func (s *Session) writeFeedItem(ctx context.Context, method, path string, req FeedItemRequest, want int) (*FeedItem, error) {
	resp, err := s.do(ctx, method, path, req)
	if err != nil {
		return nil, err
	}

	var item FeedItem
	if err := decodeJSON(resp, &item, want); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Session) DeleteFeedItem(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/feed/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
