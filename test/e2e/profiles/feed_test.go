//go:build e2e

package profiles_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/pkg/feedsdk"
)

// TestOwnershipFlow walks alice and bob through the public API.
func TestOwnershipFlow(t *testing.T) {
	client, _ := setupContainer(t, containerOptions{})
	ctx := t.Context()

	alice, aliceSession := registerAndLogin(t, client, "alice@example.com", "Alice", "pw123")
	bob, bobSession := registerAndLogin(t, client, "bob@example.com", "Bob", "pw123")

	item, err := aliceSession.PostStatus(ctx, "hello world")
	require.NoError(t, err)
	require.Equal(t, alice.ID, item.Owner)

	_, err = bobSession.UpdateFeedItem(ctx, item.ID, feedsdk.FeedItemRequest{StatusText: strPtr("nope")})
	require.ErrorIs(t, err, feedsdk.ErrPermissionDenied)

	_, err = bobSession.UpdateProfile(ctx, alice.ID, feedsdk.ProfileUpdate{Name: strPtr("Mallory")})
	require.ErrorIs(t, err, feedsdk.ErrPermissionDenied)

	feed, err := bobSession.ListFeed(ctx, feedsdk.ListOptions{})
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, bobSession.DeleteProfile(ctx, bob.ID))
	_, err = client.GetProfile(ctx, bob.ID)
	require.ErrorIs(t, err, feedsdk.ErrNotFound)

	require.NoError(t, aliceSession.Logout(ctx))
	_, err = client.NewSession(aliceSession.Token()).ListFeed(ctx, feedsdk.ListOptions{})
	require.ErrorIs(t, err, feedsdk.ErrInvalidToken)
}

func TestPrivateDirectory(t *testing.T) {
	client, _ := setupContainer(t, containerOptions{privateProfiles: true})

	_, session := registerAndLogin(t, client, "carol@example.com", "Carol", "pw123")

	_, err := client.ListProfiles(t.Context(), feedsdk.ListOptions{})
	require.ErrorIs(t, err, feedsdk.ErrInvalidToken)

	profiles, err := session.ListProfiles(t.Context(), feedsdk.ListOptions{})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
}

func TestCreateSuperuserCommand(t *testing.T) {
	client, container := setupContainer(t, containerOptions{})

	code, out := execInContainer(t, container,
		"profiles", "createsuperuser", "-email", "Root@Example.com", "-name", "Root", "-password", "s3cret")
	require.Equal(t, 0, code, out)
	require.Contains(t, out, "root@example.com")

	_, err := client.Login(t.Context(), "root@example.com", "s3cret")
	require.NoError(t, err)

	code, _ = execInContainer(t, container,
		"profiles", "createsuperuser", "-email", "root@example.com", "-name", "Again", "-password", "x")
	require.NotEqual(t, 0, code, "duplicate email should fail")
}
