package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/permission"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
	"github.com/aussiebroadwan/profilefeed/pkg/cryptox"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

type ProfileService struct {
	Store       store.Store
	Permissions permission.Evaluator
}

// List has no authorization gate.
func (s *ProfileService) List(ctx context.Context, q domain.ListQuery) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, q)
}

func (s *ProfileService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// Update edits a profile on behalf of actorID. With partial unset every
// required field must be present (PUT); otherwise only supplied fields
// change (PATCH). The load, the ownership check and the write share one
// transaction.
func (s *ProfileService) Update(
	ctx context.Context,
	actorID, id string,
	patch domain.ProfilePatch,
	partial bool,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Permissions.Check(actorID, permission.Write, permission.Profile(u.ID)); err != nil {
			l.Warn("profile update denied", slog.String("target_id", u.ID))
			return err
		}

		errs := fieldErrors{}
		if !partial {
			if patch.Email == nil {
				errs.add("email", msgRequired)
			}
			if patch.Name == nil {
				errs.add("name", msgRequired)
			}
		}
		if patch.Email != nil {
			u.Email = cleanEmail(errs, *patch.Email)
		}
		if patch.Name != nil {
			u.Name = cleanName(errs, *patch.Name)
		}
		if patch.Password != nil {
			checkPassword(errs, *patch.Password)
		}
		if err := errs.err(); err != nil {
			return err
		}

		if patch.Password != nil {
			hash, err := cryptox.HashPassword(*patch.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u.PasswordHash = hash
		}
		u.UpdatedAt = time.Now().UTC()

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fieldError("email", msgEmailTaken)
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("profile updated", slog.String("user_id", u.ID))
	return u, nil
}

// Delete removes a profile, its token and its feed items.
func (s *ProfileService) Delete(ctx context.Context, actorID, id string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Permissions.Check(actorID, permission.Write, permission.Profile(u.ID)); err != nil {
			l.Warn("profile delete denied", slog.String("target_id", u.ID))
			return err
		}

		if err := tx.Users().DeleteUser(ctx, u.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.Info("profile deleted", slog.String("user_id", id))
	return nil
}
