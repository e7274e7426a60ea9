//go:build e2e

package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/pkg/feedsdk"
)

// TestRateLimitLogin checks the strict profile (5 req/min) guards login.
func TestRateLimitLogin(t *testing.T) {
	client, _ := setupContainer(t, containerOptions{defaultLimits: true})

	for i := range 5 {
		_, err := client.Login(t.Context(), "nobody@example.com", "wrong")
		require.ErrorIs(t, err, feedsdk.ErrInvalidCredentials, "request %d should not be limited yet", i+1)
	}

	_, err := client.Login(t.Context(), "nobody@example.com", "wrong")
	require.ErrorIs(t, err, feedsdk.ErrRateLimitExceeded)
}
