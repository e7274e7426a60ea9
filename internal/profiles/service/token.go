package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
	"github.com/aussiebroadwan/profilefeed/pkg/cryptox"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

// TokenService swaps credentials for opaque tokens and resolves tokens back
// to users.
type TokenService struct {
	Store store.Store

	// TTL bounds token lifetime. Zero means tokens live until replaced or
	// revoked.
	TTL time.Duration
}

// Authenticate checks email and password and issues a fresh token, replacing
// whatever token the user had before.
func (s *TokenService) Authenticate(ctx context.Context, email, password string) (domain.IssuedToken, error) {
	l := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		cryptox.VerifyDummy(password)
		return domain.IssuedToken{}, ErrAuthentication
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		cryptox.VerifyDummy(password)
		l.Info("login failed", slog.String("reason", "unknown_email"))
		return domain.IssuedToken{}, ErrAuthentication
	case err != nil:
		return domain.IssuedToken{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		switch {
		case errors.Is(err, cryptox.ErrPasswordMismatch):
			l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", u.ID))
			return domain.IssuedToken{}, ErrAuthentication
		case errors.Is(err, cryptox.ErrInvalidHash):
			l.Error("stored password hash is unreadable", slog.String("user_id", u.ID), slog.Any("error", err))
			return domain.IssuedToken{}, ErrAuthentication
		default:
			return domain.IssuedToken{}, fmt.Errorf("verify password: %w", err)
		}
	}

	if !u.IsActive {
		l.Info("login failed", slog.String("reason", "inactive"), slog.String("user_id", u.ID))
		return domain.IssuedToken{}, ErrAuthentication
	}

	return s.issue(ctx, u.ID)
}

func (s *TokenService) issue(ctx context.Context, userID string) (domain.IssuedToken, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.IssuedToken{}, err
	}

	now := time.Now().UTC()
	tok := domain.AuthToken{
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(raw),
		CreatedAt: now,
	}
	if s.TTL > 0 {
		exp := now.Add(s.TTL)
		tok.ExpiresAt = &exp
	}

	if err := s.Store.AuthTokens().UpsertAuthToken(ctx, tok); err != nil {
		return domain.IssuedToken{}, fmt.Errorf("store token: %w", err)
	}

	slogx.FromContext(ctx).Info("token issued", slog.String("user_id", userID))
	return domain.IssuedToken{Token: raw, UserID: userID, ExpiresAt: tok.ExpiresAt}, nil
}

// Resolve returns the active user bound to raw.
func (s *TokenService) Resolve(ctx context.Context, raw string) (domain.User, error) {
	if !cryptox.WellFormedToken(raw, cryptox.TokenSize256) {
		return domain.User{}, ErrAuthentication
	}

	tok, err := s.Store.AuthTokens().GetAuthTokenByHash(ctx, cryptox.FingerprintToken(raw))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrAuthentication
	case err != nil:
		return domain.User{}, fmt.Errorf("lookup token: %w", err)
	}

	if tok.Expired(time.Now()) {
		return domain.User{}, ErrAuthentication
	}

	u, err := s.Store.Users().GetUserByID(ctx, tok.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrAuthentication
	case err != nil:
		return domain.User{}, fmt.Errorf("lookup token owner: %w", err)
	}
	if !u.IsActive {
		return domain.User{}, ErrAuthentication
	}
	return u, nil
}

// Revoke drops the user's token. Revoking twice is fine.
func (s *TokenService) Revoke(ctx context.Context, userID string) error {
	if err := s.Store.AuthTokens().DeleteAuthTokenForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	slogx.FromContext(ctx).Info("token revoked", slog.String("user_id", userID))
	return nil
}

// PurgeExpired deletes expired tokens and returns how many were removed.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Store.AuthTokens().DeleteExpiredAuthTokens(ctx, time.Now())
}
