package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/pkg/cryptox"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	u := s.register(t, "a@x.io", "A", "pw123")

	t.Run("issues a resolvable token", func(t *testing.T) {
		issued, err := s.tokens.Authenticate(t.Context(), "A@X.IO", "pw123")
		require.NoError(t, err)
		require.Equal(t, u.ID, issued.UserID)
		require.Nil(t, issued.ExpiresAt)
		require.True(t, cryptox.WellFormedToken(issued.Token, cryptox.TokenSize256))

		got, err := s.tokens.Resolve(t.Context(), issued.Token)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("stores only the fingerprint", func(t *testing.T) {
		issued, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
		require.NoError(t, err)

		tok, err := s.store.AuthTokens().GetAuthTokenByHash(t.Context(), cryptox.FingerprintToken(issued.Token))
		require.NoError(t, err)
		require.NotEqual(t, issued.Token, tok.TokenHash)
	})

	failures := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@x.io", "nope"},
		{"unknown email", "ghost@x.io", "pw123"},
		{"empty email", "", "pw123"},
		{"empty password", "a@x.io", ""},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.tokens.Authenticate(t.Context(), tt.email, tt.password)
			require.ErrorIs(t, err, ErrAuthentication)
		})
	}
}

func TestAuthenticate_ReplacesPreviousToken(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	s.register(t, "a@x.io", "A", "pw123")

	first, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.NoError(t, err)
	second, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	_, err = s.tokens.Resolve(t.Context(), first.Token)
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = s.tokens.Resolve(t.Context(), second.Token)
	require.NoError(t, err)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	u := s.register(t, "a@x.io", "A", "pw123")

	issued, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.NoError(t, err)

	u.IsActive = false
	require.NoError(t, s.store.Users().UpdateUser(t.Context(), u))

	_, err = s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = s.tokens.Resolve(t.Context(), issued.Token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestResolve_Rejects(t *testing.T) {
	t.Parallel()
	s := newServices(t)

	unknown, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	for _, raw := range []string{"", "short", "not base64 at all!!", unknown} {
		_, err := s.tokens.Resolve(t.Context(), raw)
		require.ErrorIs(t, err, ErrAuthentication, "token %q", raw)
	}
}

func TestRevoke(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	u := s.register(t, "a@x.io", "A", "pw123")

	issued, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.NoError(t, err)

	require.NoError(t, s.tokens.Revoke(t.Context(), u.ID))
	_, err = s.tokens.Resolve(t.Context(), issued.Token)
	require.ErrorIs(t, err, ErrAuthentication)

	// Idempotent.
	require.NoError(t, s.tokens.Revoke(t.Context(), u.ID))
}

func TestTokenTTL(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	s.register(t, "a@x.io", "A", "pw123")
	s.tokens.TTL = 10 * time.Millisecond

	issued, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.NoError(t, err)
	require.NotNil(t, issued.ExpiresAt)

	time.Sleep(50 * time.Millisecond)

	_, err = s.tokens.Resolve(t.Context(), issued.Token)
	require.ErrorIs(t, err, ErrAuthentication)

	n, err := s.tokens.PurgeExpired(t.Context())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
