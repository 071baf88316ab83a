package domain

import "time"

// State is the lifecycle stage of a broadcast derived from its stored fields
// and a point in time. It is never persisted.
type State string

const (
	StateDraft    State = "draft"
	StateActive   State = "active"
	StateExpired  State = "expired"
	StateArchived State = "archived"
)

func (s State) String() string { return string(s) }

// SoftDeletedAt is the expiry written by a soft delete. It is always in the past.
var SoftDeletedAt = time.Unix(0, 0).UTC()

// IsExpiredAt reports whether expiresAt is set and not after now.
func IsExpiredAt(b *Broadcast, now time.Time) bool {
	return b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}

// IsScheduledAt reports whether the broadcast is waiting for its scheduledFor.
func IsScheduledAt(b *Broadcast, now time.Time) bool {
	return b.ScheduledFor != nil && b.ScheduledFor.After(now)
}

// StateAt derives the lifecycle state. Expiry wins over every other field.
func StateAt(b *Broadcast, now time.Time) State {
	if IsExpiredAt(b, now) {
		if !b.Sticky {
			return StateArchived
		}
		return StateExpired
	}
	if b.IsDraft {
		return StateDraft
	}
	return StateActive
}

// IsFeedCandidate applies the time and flag predicates of the feed: not a
// draft, not expired, not waiting on its schedule, and sticky. Audience and
// read state are checked by the caller.
func IsFeedCandidate(b *Broadcast, now time.Time) bool {
	return !b.IsDraft &&
		!IsExpiredAt(b, now) &&
		!IsScheduledAt(b, now) &&
		b.Sticky
}
