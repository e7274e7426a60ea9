package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"alice@example.com", "alice@example.com"},
		{"  Alice@Example.COM \n", "alice@example.com"},
		{"STRASSE@Example.de", "strasse@example.de"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}

	// Precomposed and decomposed forms land on the same account.
	require.Equal(t, NormalizeEmail("jos\u00e9@example.com"), NormalizeEmail("JOSE\u0301@example.com"))
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b", "alice@example.com", "first.last+tag@sub.example.org"} {
		require.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "alice", "@example.com", "alice@", "Alice <alice@example.com>", "a b@example.com"} {
		require.False(t, ValidEmail(bad), bad)
	}
}

func TestListQueryNormalized(t *testing.T) {
	q := ListQuery{Limit: 0, Offset: -5, Search: "  bob "}.Normalized()
	require.Equal(t, DefaultListLimit, q.Limit)
	require.Equal(t, 0, q.Offset)
	require.Equal(t, "bob", q.Search)

	require.Equal(t, MaxListLimit, ListQuery{Limit: 10_000}.Normalized().Limit)
	require.Equal(t, 7, ListQuery{Limit: 7}.Normalized().Limit)
}

func TestSearchTerms(t *testing.T) {
	require.Equal(t, []string{"alice", "example"}, ListQuery{Search: "alice, example"}.SearchTerms())
	require.Empty(t, ListQuery{Search: " , "}.SearchTerms())
}

func TestAuthTokenExpired(t *testing.T) {
	now := time.Now()
	past, future := now.Add(-time.Minute), now.Add(time.Minute)

	require.False(t, AuthToken{}.Expired(now))
	require.True(t, AuthToken{ExpiresAt: &past}.Expired(now))
	require.False(t, AuthToken{ExpiresAt: &future}.Expired(now))
}
