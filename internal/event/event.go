// Package event delivers broadcast change notifications to connected viewers.
//
// Delivery is best-effort: events are produced after the primary write has
// committed and their loss never affects the write's result. Clients treat
// any event as a hint to re-fetch their feed.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

// Type discriminates the wire payload.
type Type string

const (
	TypeBroadcastCreated Type = "broadcast_created"
	TypeBroadcastUpdated Type = "broadcast_updated"
	TypeBroadcastRead    Type = "broadcast_read"
)

func (t Type) String() string { return string(t) }

// Summary is the broadcast excerpt carried by broadcast_created.
type Summary struct {
	ID        uuid.UUID            `json:"id"`
	CreatedBy uuid.UUID            `json:"createdBy"`
	Type      domain.BroadcastType `json:"type"`
	Title     string               `json:"title"`
	Message   *string              `json:"message,omitempty"`
	Audience  string               `json:"audience"`
	Priority  domain.Priority      `json:"priority"`
}

// Event is one notification as sent to clients.
type Event struct {
	Type        Type           `json:"type"`
	BroadcastID uuid.UUID      `json:"broadcastId"`
	Broadcast   *Summary       `json:"broadcast,omitempty"`
	Changes     map[string]any `json:"changes,omitempty"`
	UserID      *uuid.UUID     `json:"userId,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`

	// Audience routes created/updated events. It is not sent to clients.
	Audience string `json:"-"`
}

// Publisher accepts events for delivery.
//
// Implementations are best-effort and at-most-once: Publish never blocks on
// delivery, never returns an error and never retries. Callers must not depend
// on an event arriving.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// BroadcastCreated builds a broadcast_created event.
func BroadcastCreated(b *domain.Broadcast, at time.Time) Event {
	return Event{
		Type:        TypeBroadcastCreated,
		BroadcastID: b.ID,
		Broadcast: &Summary{
			ID:        b.ID,
			CreatedBy: b.CreatedBy,
			Type:      b.Type,
			Title:     b.Title,
			Message:   b.Message,
			Audience:  b.Audience,
			Priority:  b.Priority,
		},
		Timestamp: at.UTC(),
		Audience:  b.Audience,
	}
}

// BroadcastUpdated builds a broadcast_updated event carrying the changed fields.
func BroadcastUpdated(b *domain.Broadcast, changes map[string]any, at time.Time) Event {
	return Event{
		Type:        TypeBroadcastUpdated,
		BroadcastID: b.ID,
		Changes:     changes,
		Timestamp:   at.UTC(),
		Audience:    b.Audience,
	}
}

// BroadcastRead builds a broadcast_read event for the reader.
func BroadcastRead(broadcastID, userID uuid.UUID, at time.Time) Event {
	return Event{
		Type:        TypeBroadcastRead,
		BroadcastID: broadcastID,
		UserID:      &userID,
		Timestamp:   at.UTC(),
	}
}

// reader returns the single recipient of a read event, if any. Other event
// types are addressed by audience instead.
func (e Event) reader() (uuid.UUID, bool) {
	if e.Type != TypeBroadcastRead || e.UserID == nil {
		return uuid.Nil, false
	}
	return *e.UserID, true
}
