// Package readtracker records which viewers have read which broadcasts.
package readtracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/event"
)

type receiptRepo interface {
	Create(ctx context.Context, rc domain.ReadReceipt) (domain.ReadReceipt, error)
	Exists(ctx context.Context, broadcastID, userID uuid.UUID) (bool, error)
	ReadIDs(ctx context.Context, userID uuid.UUID, broadcastIDs []uuid.UUID) ([]uuid.UUID, error)
	ListByBroadcast(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error)
}

type publisher interface {
	Publish(ctx context.Context, e event.Event)
}

// MarkReadResult reports whether the receipt already existed.
type MarkReadResult struct {
	AlreadyRead bool
}

// Tracker manages read receipts.
type Tracker struct {
	log      *slog.Logger
	receipts receiptRepo
	events   publisher
	now      func() time.Time
}

// NewTracker creates a new read tracker.
func NewTracker(log *slog.Logger, receipts receiptRepo, events publisher) *Tracker {
	return &Tracker{
		log:      log.With("service", "readtracker"),
		receipts: receipts,
		events:   events,
		now:      time.Now,
	}
}

// MarkRead records that userID read broadcastID. Repeating the call is not
// an error: the first receipt wins and AlreadyRead is set. Only a fresh
// receipt publishes broadcast_read.
func (t *Tracker) MarkRead(ctx context.Context, broadcastID, userID uuid.UUID) (MarkReadResult, error) {
	exists, err := t.receipts.Exists(ctx, broadcastID, userID)
	if err != nil {
		return MarkReadResult{}, fmt.Errorf("check receipt: %w", err)
	}
	if exists {
		return MarkReadResult{AlreadyRead: true}, nil
	}

	rc, err := t.receipts.Create(ctx, domain.ReadReceipt{
		BroadcastID: broadcastID,
		UserID:      userID,
		ReadAt:      t.now().UTC(),
	})
	if err != nil {
		// A concurrent request inserted first.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return MarkReadResult{AlreadyRead: true}, nil
		}
		return MarkReadResult{}, fmt.Errorf("create receipt: %w", err)
	}

	t.events.Publish(ctx, event.BroadcastRead(rc.BroadcastID, rc.UserID, rc.ReadAt))

	t.log.InfoContext(ctx, "broadcast read",
		slog.String("broadcast_id", broadcastID.String()),
		slog.String("user_id", userID.String()),
	)
	return MarkReadResult{}, nil
}

// ReadBroadcastIDs returns the subset of candidates userID has read.
func (t *Tracker) ReadBroadcastIDs(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids, err := t.receipts.ReadIDs(ctx, userID, candidates)
	if err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// Readers lists every receipt for a broadcast.
func (t *Tracker) Readers(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error) {
	receipts, err := t.receipts.ListByBroadcast(ctx, broadcastID)
	if err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	return receipts, nil
}
