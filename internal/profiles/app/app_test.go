package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
)

func TestNewOpensSQLiteAndMigrates(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv("PROFILES_DATABASE_FILE", filepath.Join(dir, "profiles.db"))
	t.Setenv("PROFILES_PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	u, err := app.CreateSuperuser(t.Context(), "Root@Example.com", "Root", "pw123")
	require.NoError(t, err)
	require.True(t, u.IsSuperuser)

	got, err := app.db.Users().GetUserByEmail(t.Context(), "root@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = app.db.FeedItems().GetFeedItem(t.Context(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
