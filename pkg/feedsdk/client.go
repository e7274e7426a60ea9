package feedsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the profile feed service. It covers the public endpoints
// and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/profiles", "", req)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := decodeJSON(resp, &p, http.StatusCreated); err != nil {
		return nil, err
	}
	return &p, nil
}

// Login exchanges credentials for a token and wraps it in a Session.
// Logging in again replaces the previous token server-side.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(tok.Token), nil
}

// NewSession wraps a token obtained elsewhere.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// ListProfiles lists profiles without authentication. Servers running with a
// private directory reject this; use Session.ListProfiles instead.
func (c *Client) ListProfiles(ctx context.Context, opts ListOptions) ([]Profile, error) {
	return listProfiles(ctx, c, "", opts)
}

// GetProfile fetches a profile without authentication.
func (c *Client) GetProfile(ctx context.Context, id string) (*Profile, error) {
	return getProfile(ctx, c, "", id)
}

func listProfiles(ctx context.Context, c *Client, token string, opts ListOptions) ([]Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/profiles"+opts.query(), token, nil)
	if err != nil {
		return nil, err
	}

	var profiles []Profile
	if err := decodeJSON(resp, &profiles, http.StatusOK); err != nil {
		return nil, err
	}
	return profiles, nil
}

func getProfile(ctx context.Context, c *Client, token, id string) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}
