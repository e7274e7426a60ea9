package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
)

type authTokensRepo struct {
	db dbtx
}

func (r *authTokensRepo) UpsertAuthToken(ctx context.Context, t domain.AuthToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			token_hash = excluded.token_hash,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		t.UserID,
		t.TokenHash,
		mapOptionalTime(t.ExpiresAt),
		t.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *authTokensRepo) GetAuthTokenByHash(ctx context.Context, hash string) (domain.AuthToken, error) {
	var (
		t         domain.AuthToken
		expiresAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, token_hash, expires_at, created_at
		FROM auth_tokens WHERE token_hash = ?`, hash,
	).Scan(&t.UserID, &t.TokenHash, &expiresAt, &t.CreatedAt)
	if err != nil {
		return domain.AuthToken{}, mapNotFound(err)
	}
	t.ExpiresAt = mapNullTimePtr(expiresAt)
	return t, nil
}

func (r *authTokensRepo) DeleteAuthTokenForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID)
	return err
}

func (r *authTokensRepo) DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE expires_at IS NOT NULL AND expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
