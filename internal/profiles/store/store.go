package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx can
// hand out the same repos bound to the transaction.
type Store interface {
	Users() Users
	AuthTokens() AuthTokens
	FeedItems() FeedItems

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns users ordered by creation (oldest first). Every
	// search term must match name or email, case-insensitively.
	ListUsers(ctx context.Context, q domain.ListQuery) ([]domain.User, error)

	// CreateUser inserts a new user. A taken email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites every mutable column from u. A taken email yields
	// ErrAlreadyExists.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to auth_tokens and feed_items.
	DeleteUser(ctx context.Context, id string) error

	CountUsers(ctx context.Context) (int, error)
}

type AuthTokens interface {
	// UpsertAuthToken stores t as the user's only token, replacing any
	// previous one in a single statement.
	UpsertAuthToken(ctx context.Context, t domain.AuthToken) error

	GetAuthTokenByHash(ctx context.Context, hash string) (domain.AuthToken, error)

	// DeleteAuthTokenForUser is a no-op when the user has no token.
	DeleteAuthTokenForUser(ctx context.Context, userID string) error

	// DeleteExpiredAuthTokens removes tokens with expires_at <= now and
	// returns how many went.
	DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error)
}

type FeedItems interface {
	GetFeedItem(ctx context.Context, id string) (domain.FeedItem, error)

	// ListFeedItems returns items newest first, optionally for one owner.
	ListFeedItems(ctx context.Context, q domain.ListQuery) ([]domain.FeedItem, error)

	// CreateFeedItem fails with ErrNotFound when the owner doesn't exist.
	CreateFeedItem(ctx context.Context, item domain.FeedItem) error

	// UpdateFeedItem rewrites status_text and updated_at.
	UpdateFeedItem(ctx context.Context, item domain.FeedItem) error

	DeleteFeedItem(ctx context.Context, id string) error
}
