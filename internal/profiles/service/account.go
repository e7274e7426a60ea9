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
	"github.com/aussiebroadwan/profilefeed/pkg/idx"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

// AccountService creates accounts. It keeps no state of its own.
type AccountService struct {
	Store store.Store
}

// CreateAccount registers an active, unprivileged user.
func (s *AccountService) CreateAccount(ctx context.Context, email, name, password string) (domain.User, error) {
	return s.create(ctx, email, name, password, false)
}

// CreateSuperuser registers a user with the staff and superuser flags set.
func (s *AccountService) CreateSuperuser(ctx context.Context, email, name, password string) (domain.User, error) {
	return s.create(ctx, email, name, password, true)
}

func (s *AccountService) create(
	ctx context.Context,
	email, name, password string,
	privileged bool,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	errs := fieldErrors{}
	email = cleanEmail(errs, email)
	name = cleanName(errs, name)
	checkPassword(errs, password)
	if err := errs.err(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      privileged,
		IsSuperuser:  privileged,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The unique index still decides races the lookup can't see.
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return fieldError("email", msgEmailTaken)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup email: %w", err)
		}

		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fieldError("email", msgEmailTaken)
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			l.Error("failed to create user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	l.Info("account created", slog.String("user_id", u.ID), slog.Bool("superuser", privileged))
	return u, nil
}
