package postgres

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
	var expiresAt sql.NullTime
	if t.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: t.ExpiresAt.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at`,
		t.UserID, t.TokenHash, expiresAt, t.CreatedAt.UTC(),
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
		FROM auth_tokens WHERE token_hash = $1`, hash,
	).Scan(&t.UserID, &t.TokenHash, &expiresAt, &t.CreatedAt)
	if err != nil {
		return domain.AuthToken{}, mapNotFound(err)
	}
	if expiresAt.Valid {
		t.ExpiresAt = &expiresAt.Time
	}
	return t, nil
}

func (r *authTokensRepo) DeleteAuthTokenForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	return err
}

func (r *authTokensRepo) DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE expires_at IS NOT NULL AND expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
