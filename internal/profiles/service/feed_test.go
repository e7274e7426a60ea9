package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/permission"
)

func TestFeedCreate(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	u := s.register(t, "a@x.io", "A", "pw123")

	item, err := s.feed.Create(t.Context(), u.ID, domain.FeedItemPatch{StatusText: ptr("  hello  ")})
	require.NoError(t, err)
	require.Equal(t, u.ID, item.OwnerID)
	require.Equal(t, "hello", item.StatusText)
	require.False(t, item.CreatedAt.IsZero())

	_, err = s.feed.Create(t.Context(), "", domain.FeedItemPatch{StatusText: ptr("anon")})
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = s.feed.Create(t.Context(), u.ID, domain.FeedItemPatch{})
	requireFieldError(t, err, "status_text")

	_, err = s.feed.Create(t.Context(), u.ID, domain.FeedItemPatch{StatusText: ptr(strings.Repeat("x", 256))})
	requireFieldError(t, err, "status_text")

	// 255 runes of multi-byte text still fits.
	_, err = s.feed.Create(t.Context(), u.ID, domain.FeedItemPatch{StatusText: ptr(strings.Repeat("é", 255))})
	require.NoError(t, err)
}

func TestFeedUpdateDelete_OwnerOnly(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	alice := s.register(t, "alice@x.io", "Alice", "pw123")
	bob := s.register(t, "bob@x.io", "Bob", "pw123")

	item, err := s.feed.Create(t.Context(), alice.ID, domain.FeedItemPatch{StatusText: ptr("first")})
	require.NoError(t, err)

	_, err = s.feed.Update(t.Context(), bob.ID, item.ID, domain.FeedItemPatch{StatusText: ptr("hacked")}, true)
	require.ErrorIs(t, err, permission.ErrDenied)
	require.ErrorIs(t, s.feed.Delete(t.Context(), bob.ID, item.ID), permission.ErrDenied)

	got, err := s.feed.Get(t.Context(), item.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.StatusText)

	_, err = s.feed.Update(t.Context(), alice.ID, item.ID, domain.FeedItemPatch{}, false)
	requireFieldError(t, err, "status_text")

	updated, err := s.feed.Update(t.Context(), alice.ID, item.ID, domain.FeedItemPatch{StatusText: ptr("edited")}, false)
	require.NoError(t, err)
	require.Equal(t, "edited", updated.StatusText)
	require.Equal(t, alice.ID, updated.OwnerID)

	require.NoError(t, s.feed.Delete(t.Context(), alice.ID, item.ID))
	_, err = s.feed.Get(t.Context(), item.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.feed.Delete(t.Context(), alice.ID, item.ID), ErrNotFound)
}

func TestFeedList_NewestFirst(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	alice := s.register(t, "alice@x.io", "Alice", "pw123")
	bob := s.register(t, "bob@x.io", "Bob", "pw123")

	for _, post := range []struct {
		owner string
		text  string
	}{
		{alice.ID, "one"},
		{bob.ID, "two"},
		{alice.ID, "three"},
	} {
		_, err := s.feed.Create(t.Context(), post.owner, domain.FeedItemPatch{StatusText: ptr(post.text)})
		require.NoError(t, err)
	}

	all, err := s.feed.List(t.Context(), domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "three", all[0].StatusText)

	mine, err := s.feed.List(t.Context(), domain.ListQuery{OwnerID: alice.ID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, it := range mine {
		require.Equal(t, alice.ID, it.OwnerID)
	}
}
