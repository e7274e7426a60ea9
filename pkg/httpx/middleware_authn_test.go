package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/pkg/httpx"
)

func fakeResolver(ctx context.Context, raw string) (string, error) {
	switch raw {
	case "good":
		return "user-1", nil
	case "boom":
		return "", errors.New("db down")
	default:
		return "", httpx.ErrInvalidToken
	}
}

// whoami echoes the authenticated user id, or "anon".
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		id = "anon"
	}
	_, _ = w.Write([]byte(id))
})

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header  string
		raw     string
		present bool
	}{
		{"", "", false},
		{"Token abc", "abc", true},
		{"token abc", "abc", true},
		{"Bearer abc", "abc", true},
		{"Basic abc", "", true},
		{"Token", "", true},
		{"Token a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			raw, present := httpx.ExtractToken(req)
			require.Equal(t, tt.raw, raw)
			require.Equal(t, tt.present, present)
		})
	}
}

func TestAuthnMiddleware(t *testing.T) {
	required := httpx.AuthnMiddleware(fakeResolver)(whoami)
	optional := httpx.OptionalAuthnMiddleware(fakeResolver)(whoami)

	tests := []struct {
		name   string
		h      http.Handler
		header string
		status int
		body   string
	}{
		{"required/valid", required, "Token good", http.StatusOK, "user-1"},
		{"required/missing", required, "", http.StatusUnauthorized, "invalid_token"},
		{"required/unknown token", required, "Token nope", http.StatusUnauthorized, "invalid_token"},
		{"required/bad scheme", required, "Basic good", http.StatusUnauthorized, "invalid_token"},
		{"required/resolver failure", required, "Token boom", http.StatusInternalServerError, "server_error"},
		{"optional/anonymous", optional, "", http.StatusOK, "anon"},
		{"optional/valid", optional, "Bearer good", http.StatusOK, "user-1"},
		{"optional/invalid still rejected", optional, "Token nope", http.StatusUnauthorized, "invalid_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			tt.h.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			require.Contains(t, rec.Body.String(), tt.body)
			if tt.status == http.StatusUnauthorized {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Token")
			}
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "c"}, order)
}
