// Package storetest holds behaviour tests every store driver must pass.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
	"github.com/aussiebroadwan/profilefeed/pkg/idx"
)

// Factory returns an empty, migrated store for one subtest.
type Factory func(t *testing.T) store.Store

// Run exercises a driver against the store contract.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"UsersCRUD", testUsersCRUD},
		{"UsersUniqueEmail", testUsersUniqueEmail},
		{"UsersConcurrentSameEmail", testUsersConcurrentSameEmail},
		{"UsersListSearch", testUsersListSearch},
		{"AuthTokensOnePerUser", testAuthTokensOnePerUser},
		{"AuthTokensDeleteExpired", testAuthTokensDeleteExpired},
		{"FeedItemsCRUDAndCascade", testFeedItemsCRUDAndCascade},
		{"WithTxRollsBack", testWithTxRollsBack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func newUser(email, name string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: "$argon2id$stub",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func mustCreateUser(t *testing.T, s store.Store, email, name string) domain.User {
	t.Helper()
	u := newUser(email, name)
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func testUsersCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.com", "Alice")

	got, err := s.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice.Email, got.Email)
	require.Equal(t, "Alice", got.Name)
	require.True(t, got.IsActive)
	require.False(t, got.IsStaff)
	require.WithinDuration(t, alice.CreatedAt, got.CreatedAt, time.Millisecond)

	got, err = s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	got.Name = "Alice A."
	got.IsStaff = true
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.Users().UpdateUser(ctx, got))

	got, err = s.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice A.", got.Name)
	require.True(t, got.IsStaff)

	n, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, s.Users().DeleteUser(ctx, alice.ID))
	_, err = s.Users().GetUserByID(ctx, alice.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Users().DeleteUser(ctx, alice.ID), store.ErrNotFound)
}

func testUsersUniqueEmail(t *testing.T, s store.Store) {
	ctx := context.Background()

	mustCreateUser(t, s, "dup@example.com", "First")
	err := s.Users().CreateUser(ctx, newUser("dup@example.com", "Second"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	bob := mustCreateUser(t, s, "bob@example.com", "Bob")
	bob.Email = "dup@example.com"
	require.ErrorIs(t, s.Users().UpdateUser(ctx, bob), store.ErrAlreadyExists)

	n, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func testUsersConcurrentSameEmail(t *testing.T, s store.Store) {
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.Users().CreateUser(ctx, newUser("race@example.com", fmt.Sprintf("racer %d", i)))
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	}
	require.Equal(t, 1, ok)
}

func testUsersListSearch(t *testing.T, s store.Store) {
	ctx := context.Background()

	mustCreateUser(t, s, "alice@example.com", "Alice Liddell")
	mustCreateUser(t, s, "bob@example.org", "Bob Builder")
	mustCreateUser(t, s, "carol@example.com", "Carol 100%")

	names := func(q domain.ListQuery) []string {
		users, err := s.Users().ListUsers(ctx, q)
		require.NoError(t, err)
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u.Name)
		}
		return out
	}

	require.Equal(t, []string{"Alice Liddell", "Bob Builder", "Carol 100%"}, names(domain.ListQuery{}))
	require.Equal(t, []string{"Alice Liddell", "Carol 100%"}, names(domain.ListQuery{Search: "example.com"}))
	require.Equal(t, []string{"Alice Liddell"}, names(domain.ListQuery{Search: "ALICE"}))
	require.Equal(t, []string{"Bob Builder"}, names(domain.ListQuery{Search: "builder, org"}))
	require.Empty(t, names(domain.ListQuery{Search: "bob com"}))
	require.Equal(t, []string{"Carol 100%"}, names(domain.ListQuery{Search: "%"}))
	require.Equal(t, []string{"Bob Builder"}, names(domain.ListQuery{Limit: 1, Offset: 1}))
}

func testAuthTokensOnePerUser(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.com", "Alice")
	now := time.Now().UTC()

	require.NoError(t, s.AuthTokens().UpsertAuthToken(ctx, domain.AuthToken{
		UserID: alice.ID, TokenHash: "first", CreatedAt: now,
	}))
	require.NoError(t, s.AuthTokens().UpsertAuthToken(ctx, domain.AuthToken{
		UserID: alice.ID, TokenHash: "second", CreatedAt: now,
	}))

	_, err := s.AuthTokens().GetAuthTokenByHash(ctx, "first")
	require.ErrorIs(t, err, store.ErrNotFound)

	tok, err := s.AuthTokens().GetAuthTokenByHash(ctx, "second")
	require.NoError(t, err)
	require.Equal(t, alice.ID, tok.UserID)
	require.Nil(t, tok.ExpiresAt)

	require.NoError(t, s.AuthTokens().DeleteAuthTokenForUser(ctx, alice.ID))
	require.NoError(t, s.AuthTokens().DeleteAuthTokenForUser(ctx, alice.ID))
	_, err = s.AuthTokens().GetAuthTokenByHash(ctx, "second")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testAuthTokensDeleteExpired(t *testing.T, s store.Store) {
	ctx := context.Background()

	now := time.Now().UTC()
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	for i, exp := range []*time.Time{&past, &future, nil} {
		u := mustCreateUser(t, s, fmt.Sprintf("u%d@example.com", i), "U")
		require.NoError(t, s.AuthTokens().UpsertAuthToken(ctx, domain.AuthToken{
			UserID: u.ID, TokenHash: fmt.Sprintf("hash-%d", i), ExpiresAt: exp, CreatedAt: now,
		}))
	}

	n, err := s.AuthTokens().DeleteExpiredAuthTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.AuthTokens().GetAuthTokenByHash(ctx, "hash-0")
	require.ErrorIs(t, err, store.ErrNotFound)
	tok, err := s.AuthTokens().GetAuthTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, tok.ExpiresAt)
	require.WithinDuration(t, future, *tok.ExpiresAt, time.Millisecond)
}

func testFeedItemsCRUDAndCascade(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.com", "Alice")
	bob := mustCreateUser(t, s, "bob@example.com", "Bob")

	base := time.Now().UTC()
	mk := func(owner domain.User, text string, offset time.Duration) domain.FeedItem {
		it := domain.FeedItem{
			ID:         idx.New().String(),
			OwnerID:    owner.ID,
			StatusText: text,
			CreatedAt:  base.Add(offset),
			UpdatedAt:  base.Add(offset),
		}
		require.NoError(t, s.FeedItems().CreateFeedItem(ctx, it))
		return it
	}

	first := mk(alice, "first", 0)
	mk(bob, "bob says hi", time.Second)
	mk(alice, "second", 2*time.Second)

	all, err := s.FeedItems().ListFeedItems(ctx, domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "second", all[0].StatusText, "newest first")

	mine, err := s.FeedItems().ListFeedItems(ctx, domain.ListQuery{OwnerID: alice.ID})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	first.StatusText = "edited"
	first.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.FeedItems().UpdateFeedItem(ctx, first))
	got, err := s.FeedItems().GetFeedItem(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", got.StatusText)

	err = s.FeedItems().CreateFeedItem(ctx, domain.FeedItem{
		ID: idx.New().String(), OwnerID: "missing", StatusText: "x", CreatedAt: base, UpdatedAt: base,
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().DeleteUser(ctx, alice.ID))
	left, err := s.FeedItems().ListFeedItems(ctx, domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, bob.ID, left[0].OwnerID)

	require.ErrorIs(t, s.FeedItems().DeleteFeedItem(ctx, first.ID), store.ErrNotFound)
}

func testWithTxRollsBack(t *testing.T, s store.Store) {
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, newUser("tx@example.com", "Tx")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "tx@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, newUser("tx@example.com", "Tx"))
	}))
	_, err = s.Users().GetUserByEmail(ctx, "tx@example.com")
	require.NoError(t, err)
}
