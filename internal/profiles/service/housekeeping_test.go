package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

func TestHousekeepingPurgesOnStart(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	s.register(t, "a@x.io", "A", "pw123")
	s.tokens.TTL = time.Millisecond

	_, err := s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	hk := NewHousekeepingService(s.tokens, slogx.Discard(), time.Hour)
	hk.Start()
	hk.Stop()

	// The first pass runs before the worker looks at the stop channel.
	n, err := s.tokens.PurgeExpired(t.Context())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestNewHousekeepingServiceDefaultsInterval(t *testing.T) {
	hk := NewHousekeepingService(nil, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)
}
