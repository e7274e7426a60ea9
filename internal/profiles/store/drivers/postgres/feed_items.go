package postgres

import (
	"context"

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
		`SELECT `+feedItemColumns+` FROM feed_items WHERE id = $1`, id))
	if err != nil {
		return domain.FeedItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *feedItemsRepo) ListFeedItems(ctx context.Context, lq domain.ListQuery) ([]domain.FeedItem, error) {
	lq = lq.Normalized()

	var q query
	q.sb.WriteString(`SELECT ` + feedItemColumns + ` FROM feed_items WHERE TRUE`)
	if lq.OwnerID != "" {
		q.sb.WriteString(` AND owner_id = ` + q.arg(lq.OwnerID))
	}
	for _, term := range lq.SearchTerms() {
		q.sb.WriteString(` AND status_text ILIKE ` + q.arg(likeTerm(term)))
	}
	q.sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ` + q.arg(lq.Limit) + ` OFFSET ` + q.arg(lq.Offset))

	rows, err := r.db.QueryContext(ctx, q.sb.String(), q.args...)
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
		VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.OwnerID, it.StatusText, it.CreatedAt.UTC(), it.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *feedItemsRepo) UpdateFeedItem(ctx context.Context, it domain.FeedItem) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE feed_items SET status_text = $1, updated_at = $2 WHERE id = $3`,
		it.StatusText, it.UpdatedAt.UTC(), it.ID,
	))
}

func (r *feedItemsRepo) DeleteFeedItem(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM feed_items WHERE id = $1`, id))
}
