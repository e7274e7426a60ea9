package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

// ErrInvalidToken is what a TokenResolver returns for a token that doesn't
// identify an active user. Any other error is treated as a server fault.
var ErrInvalidToken = errors.New("invalid token")

// TokenResolver maps a raw token to the user ID it belongs to.
type TokenResolver func(ctx context.Context, raw string) (userID string, err error)

// Accepted Authorization schemes. "Token" is the primary one; "Bearer" is
// accepted for clients that only know how to send that.
var authSchemes = []string{"Token", "Bearer"}

// AuthnMiddleware rejects requests without a valid token.
func AuthnMiddleware(resolve TokenResolver) Middleware {
	return authn(resolve, true)
}

// OptionalAuthnMiddleware lets anonymous requests through, but a token that is
// present must still be valid.
func OptionalAuthnMiddleware(resolve TokenResolver) Middleware {
	return authn(resolve, false)
}

func authn(resolve TokenResolver, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, present := ExtractToken(r)
			if !present {
				if required {
					writeTokenError(w, "authentication credentials were not provided")
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if raw == "" {
				writeTokenError(w, "malformed authorization header")
				return
			}

			userID, err := resolve(ctx, raw)
			switch {
			case errors.Is(err, ErrInvalidToken):
				writeTokenError(w, "invalid token")
				return
			case err != nil:
				log.Error("token resolution failed", "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
				return
			}

			ctx = WithUserID(ctx, userID)
			ctx = slogx.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken pulls the token out of the Authorization header. present is
// false when there is no header at all; a header with an unknown scheme or
// empty credentials yields present=true and raw="".
func ExtractToken(r *http.Request) (raw string, present bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}

	scheme, cred, ok := strings.Cut(header, " ")
	if !ok {
		return "", true
	}
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) {
			cred = strings.TrimSpace(cred)
			if strings.ContainsAny(cred, " \t") {
				return "", true
			}
			return cred, true
		}
	}
	return "", true
}

func writeTokenError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Token error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
