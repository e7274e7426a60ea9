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
	"github.com/aussiebroadwan/profilefeed/pkg/idx"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"
)

type FeedService struct {
	Store       store.Store
	Permissions permission.Evaluator
}

// List returns feed items newest first.
func (s *FeedService) List(ctx context.Context, q domain.ListQuery) ([]domain.FeedItem, error) {
	return s.Store.FeedItems().ListFeedItems(ctx, q)
}

func (s *FeedService) Get(ctx context.Context, id string) (domain.FeedItem, error) {
	return s.Store.FeedItems().GetFeedItem(ctx, id)
}

// Create posts a status as actorID. The owner is always the actor.
func (s *FeedService) Create(ctx context.Context, actorID string, patch domain.FeedItemPatch) (domain.FeedItem, error) {
	if actorID == "" {
		return domain.FeedItem{}, ErrAuthentication
	}

	errs := fieldErrors{}
	var text string
	if patch.StatusText == nil {
		errs.add("status_text", msgRequired)
	} else {
		text = cleanStatusText(errs, *patch.StatusText)
	}
	if err := errs.err(); err != nil {
		return domain.FeedItem{}, err
	}

	now := time.Now().UTC()
	item := domain.FeedItem{
		ID:         idx.New().String(),
		OwnerID:    actorID,
		StatusText: text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.FeedItems().CreateFeedItem(ctx, item); err != nil {
		// Owner vanished between auth and insert.
		if errors.Is(err, store.ErrNotFound) {
			return domain.FeedItem{}, ErrAuthentication
		}
		return domain.FeedItem{}, fmt.Errorf("create feed item: %w", err)
	}

	slogx.FromContext(ctx).Info("feed item created", slog.String("item_id", item.ID))
	return item, nil
}

// Update edits an item owned by actorID.
func (s *FeedService) Update(
	ctx context.Context,
	actorID, id string,
	patch domain.FeedItemPatch,
	partial bool,
) (domain.FeedItem, error) {
	l := slogx.FromContext(ctx)

	var item domain.FeedItem
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		item, err = tx.FeedItems().GetFeedItem(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Permissions.Check(actorID, permission.Write, permission.FeedItem(item.OwnerID)); err != nil {
			l.Warn("feed item update denied", slog.String("item_id", item.ID))
			return err
		}

		errs := fieldErrors{}
		switch {
		case patch.StatusText != nil:
			item.StatusText = cleanStatusText(errs, *patch.StatusText)
		case !partial:
			errs.add("status_text", msgRequired)
		}
		if err := errs.err(); err != nil {
			return err
		}

		item.UpdatedAt = time.Now().UTC()
		if err := tx.FeedItems().UpdateFeedItem(ctx, item); err != nil {
			return fmt.Errorf("update feed item: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.FeedItem{}, err
	}
	return item, nil
}

// Delete removes an item owned by actorID.
func (s *FeedService) Delete(ctx context.Context, actorID, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		item, err := tx.FeedItems().GetFeedItem(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Permissions.Check(actorID, permission.Write, permission.FeedItem(item.OwnerID)); err != nil {
			slogx.FromContext(ctx).Warn("feed item delete denied", slog.String("item_id", item.ID))
			return err
		}

		if err := tx.FeedItems().DeleteFeedItem(ctx, item.ID); err != nil {
			return fmt.Errorf("delete feed item: %w", err)
		}
		return nil
	})
}
