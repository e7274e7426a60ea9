package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/permission"
	"github.com/aussiebroadwan/profilefeed/pkg/cryptox"
)

func TestProfileUpdate_OwnerOnly(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	alice := s.register(t, "alice@x.io", "Alice", "pw123")
	bob := s.register(t, "bob@x.io", "Bob", "pw123")

	_, err := s.profiles.Update(t.Context(), bob.ID, alice.ID, domain.ProfilePatch{Name: ptr("Mallory")}, true)
	require.ErrorIs(t, err, permission.ErrDenied)

	_, err = s.profiles.Update(t.Context(), "", alice.ID, domain.ProfilePatch{Name: ptr("Mallory")}, true)
	require.ErrorIs(t, err, permission.ErrDenied)

	got, err := s.profiles.Get(t.Context(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)

	updated, err := s.profiles.Update(t.Context(), alice.ID, alice.ID, domain.ProfilePatch{Name: ptr("Alicia")}, true)
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.Name)
	require.Equal(t, "alice@x.io", updated.Email)
}

func TestProfileUpdate_Full(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	u := s.register(t, "a@x.io", "A", "pw123")

	t.Run("requires email and name", func(t *testing.T) {
		_, err := s.profiles.Update(t.Context(), u.ID, u.ID, domain.ProfilePatch{Name: ptr("B")}, false)
		requireFieldError(t, err, "email")
	})

	t.Run("replaces fields and rehashes password", func(t *testing.T) {
		updated, err := s.profiles.Update(t.Context(), u.ID, u.ID, domain.ProfilePatch{
			Email:    ptr("New@X.io"),
			Name:     ptr("New"),
			Password: ptr("pw456"),
		}, false)
		require.NoError(t, err)
		require.Equal(t, "new@x.io", updated.Email)
		require.NoError(t, cryptox.VerifyPassword("pw456", updated.PasswordHash))

		_, err = s.tokens.Authenticate(t.Context(), "new@x.io", "pw456")
		require.NoError(t, err)
		_, err = s.tokens.Authenticate(t.Context(), "a@x.io", "pw123")
		require.ErrorIs(t, err, ErrAuthentication)
	})
}

func TestProfileUpdate_EmailTaken(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	a := s.register(t, "a@x.io", "A", "pw123")
	s.register(t, "b@x.io", "B", "pw123")

	_, err := s.profiles.Update(t.Context(), a.ID, a.ID, domain.ProfilePatch{Email: ptr("B@x.io")}, true)
	requireFieldError(t, err, "email")
}

func TestProfileUpdate_NotFound(t *testing.T) {
	t.Parallel()
	s := newServices(t)

	_, err := s.profiles.Update(t.Context(), "x", "missing", domain.ProfilePatch{}, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfileDelete(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	alice := s.register(t, "alice@x.io", "Alice", "pw123")
	bob := s.register(t, "bob@x.io", "Bob", "pw123")

	_, err := s.feed.Create(t.Context(), alice.ID, domain.FeedItemPatch{StatusText: ptr("hi")})
	require.NoError(t, err)

	require.ErrorIs(t, s.profiles.Delete(t.Context(), bob.ID, alice.ID), permission.ErrDenied)
	require.NoError(t, s.profiles.Delete(t.Context(), alice.ID, alice.ID))

	_, err = s.profiles.Get(t.Context(), alice.ID)
	require.ErrorIs(t, err, ErrNotFound)

	items, err := s.feed.List(t.Context(), domain.ListQuery{OwnerID: alice.ID})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestProfileList_Search(t *testing.T) {
	t.Parallel()
	s := newServices(t)
	s.register(t, "alice@x.io", "Alice Smith", "pw123")
	s.register(t, "bob@y.io", "Bob Smith", "pw123")
	s.register(t, "carol@x.io", "Carol Jones", "pw123")

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"Alice Smith", "Bob Smith", "Carol Jones"}},
		{"smith", []string{"Alice Smith", "Bob Smith"}},
		{"smith x.io", []string{"Alice Smith"}},
		{"SMITH,y.io", []string{"Bob Smith"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			users, err := s.profiles.List(t.Context(), domain.ListQuery{Search: tt.search})
			require.NoError(t, err)

			var names []string
			for _, u := range users {
				names = append(names, u.Name)
			}
			require.Equal(t, tt.want, names)
		})
	}
}
