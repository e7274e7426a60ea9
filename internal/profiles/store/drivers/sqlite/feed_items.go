package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
)

const feedItemColumns = `id, owner_id, status_text, created_at, updated_at`

type feedItemsRepo struct {
	db dbtx
}

func scanFeedItem(row rowScanner) (domain.FeedItem, error) {
	var it domain.FeedItem
	err := row.Scan(&it.ID, &it.OwnerID, &it.StatusText, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *feedItemsRepo) GetFeedItem(ctx context.Context, id string) (domain.FeedItem, error) {
	it, err := scanFeedItem(r.db.QueryRowContext(ctx,
		`SELECT `+feedItemColumns+` FROM feed_items WHERE id = ?`, id))
	if err != nil {
		return domain.FeedItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *feedItemsRepo) ListFeedItems(ctx context.Context, q domain.ListQuery) ([]domain.FeedItem, error) {
	q = q.Normalized()

	var sb strings.Builder
	sb.WriteString(`SELECT ` + feedItemColumns + ` FROM feed_items WHERE 1=1`)
	var args []any
	if q.OwnerID != "" {
		sb.WriteString(` AND owner_id = ?`)
		args = append(args, q.OwnerID)
	}
	for _, term := range q.SearchTerms() {
		sb.WriteString(` AND status_text LIKE ? ESCAPE '\'`)
		args = append(args, likeTerm(term))
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.FeedItem{}
	for rows.Next() {
		it, err := scanFeedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *feedItemsRepo) CreateFeedItem(ctx context.Context, it domain.FeedItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feed_items (`+feedItemColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		it.ID,
		it.OwnerID,
		it.StatusText,
		it.CreatedAt.UTC(),
		it.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *feedItemsRepo) UpdateFeedItem(ctx context.Context, it domain.FeedItem) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE feed_items SET status_text = ?, updated_at = ? WHERE id = ?`,
		it.StatusText, it.UpdatedAt.UTC(), it.ID,
	))
}

func (r *feedItemsRepo) DeleteFeedItem(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM feed_items WHERE id = ?`, id))
}
