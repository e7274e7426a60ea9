package domain

import "time"

type FeedItem struct {
	ID         string
	OwnerID    string
	StatusText string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FeedItemPatch carries the writable fields of a feed item. The owner is
// never part of it.
type FeedItemPatch struct {
	StatusText *string
}
