// Package permission decides whether an acting user may read or write a
// profile or feed item. Ownership is the only basis for writes.
package permission

import "errors"

// ErrDenied means the caller is known (or anonymous) but not allowed.
var ErrDenied = errors.New("permission denied")

// Kind is the closed set of resource kinds with a policy.
type Kind uint8

const (
	KindProfile Kind = iota + 1
	KindFeedItem
)

func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindFeedItem:
		return "feed_item"
	default:
		return "unknown"
	}
}

type Action uint8

const (
	Read Action = iota + 1
	Write
)

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// Target identifies the resource being acted on. OwnerID is the owning
// user: for a profile that is the profile's own ID.
type Target struct {
	Kind    Kind
	OwnerID string
}

// Profile is the Target for the profile with the given id.
func Profile(id string) Target { return Target{Kind: KindProfile, OwnerID: id} }

// FeedItem is the Target for a feed item owned by ownerID.
func FeedItem(ownerID string) Target { return Target{Kind: KindFeedItem, OwnerID: ownerID} }

// Evaluator holds no state; the zero value is ready to use.
type Evaluator struct{}

// Check returns nil when actorID may perform action on target and ErrDenied
// otherwise. An empty actorID is an anonymous caller.
func (Evaluator) Check(actorID string, action Action, target Target) error {
	switch target.Kind {
	case KindProfile, KindFeedItem:
		return ownerPolicy(actorID, action, target.OwnerID)
	default:
		return ErrDenied
	}
}

// ownerPolicy: anyone may read, only the owner may write.
func ownerPolicy(actorID string, action Action, ownerID string) error {
	switch action {
	case Read:
		return nil
	case Write:
		if actorID != "" && ownerID != "" && actorID == ownerID {
			return nil
		}
		return ErrDenied
	default:
		return ErrDenied
	}
}
