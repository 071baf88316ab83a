// Package lifecycle moves broadcasts between draft, active, expired and
// archived. Each transition is a single field update made under a row lock
// together with its version snapshot. None of them is scheduled; the state
// is always derived from the stored fields at read time.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

type broadcastRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BroadcastPatch, now time.Time) (domain.Broadcast, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type snapshotter interface {
	Snapshot(ctx context.Context, broadcastID, changedBy uuid.UUID, reason *string) (domain.BroadcastVersion, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Transition is the outcome of a lifecycle change.
type Transition struct {
	Broadcast domain.Broadcast
	Changes   map[string]any
}

// Manager applies lifecycle transitions.
type Manager struct {
	log        *slog.Logger
	broadcasts broadcastRepo
	versions   snapshotter
	tx         txManager
	now        func() time.Time
}

// NewManager creates a new lifecycle manager.
func NewManager(log *slog.Logger, broadcasts broadcastRepo, versions snapshotter, tx txManager) *Manager {
	return &Manager{
		log:        log.With("service", "lifecycle"),
		broadcasts: broadcasts,
		versions:   versions,
		tx:         tx,
		now:        time.Now,
	}
}

// Publish turns a draft into an active broadcast. sticky defaults to true.
// Only drafts can be published; the draft check runs under the row lock, so
// of two concurrent publishes the second sees the first one's result and
// gets ErrConflict.
func (m *Manager) Publish(ctx context.Context, id, actor uuid.UUID, sticky *bool) (Transition, error) {
	now := m.now()

	patch := domain.BroadcastPatch{
		IsDraft: domain.SetTo(false),
		Sticky:  domain.SetTo(true),
	}
	if sticky != nil {
		patch.Sticky = domain.SetTo(*sticky)
	}

	onlyDrafts := func(b *domain.Broadcast) error {
		if state := domain.StateAt(b, now); state != domain.StateDraft {
			return fmt.Errorf("publish broadcast in state %s: %w", state, domain.ErrConflict)
		}
		return nil
	}

	t, err := m.apply(ctx, id, actor, "published", onlyDrafts, patch, now)
	if err != nil {
		return Transition{}, fmt.Errorf("publish broadcast: %w", err)
	}

	m.log.InfoContext(ctx, "broadcast published",
		slog.String("broadcast_id", id.String()),
		slog.String("actor", actor.String()),
	)
	return t, nil
}

// SoftDelete hides a broadcast by moving its expiry to the epoch. The row,
// its receipts and its history are kept.
func (m *Manager) SoftDelete(ctx context.Context, id, actor uuid.UUID) (Transition, error) {
	deletedAt := domain.SoftDeletedAt
	patch := domain.BroadcastPatch{
		ExpiresAt: domain.SetTo(&deletedAt),
	}

	t, err := m.apply(ctx, id, actor, "soft deleted", nil, patch, m.now())
	if err != nil {
		return Transition{}, fmt.Errorf("soft delete broadcast: %w", err)
	}

	m.log.InfoContext(ctx, "broadcast soft deleted",
		slog.String("broadcast_id", id.String()),
		slog.String("actor", actor.String()),
	)
	return t, nil
}

// Archive expires a broadcast now and clears sticky.
func (m *Manager) Archive(ctx context.Context, id, actor uuid.UUID) (Transition, error) {
	now := m.now()
	expiresAt := now.UTC()
	patch := domain.BroadcastPatch{
		Sticky:    domain.SetTo(false),
		ExpiresAt: domain.SetTo(&expiresAt),
	}

	t, err := m.apply(ctx, id, actor, "archived", nil, patch, now)
	if err != nil {
		return Transition{}, fmt.Errorf("archive broadcast: %w", err)
	}

	m.log.InfoContext(ctx, "broadcast archived",
		slog.String("broadcast_id", id.String()),
		slog.String("actor", actor.String()),
	)
	return t, nil
}

// HardDelete removes the broadcast with its receipts and history. It is
// irreversible and requires confirm.
func (m *Manager) HardDelete(ctx context.Context, id, actor uuid.UUID, confirm bool) error {
	if !confirm {
		return domain.NewValidationError("confirm", "must be true to permanently delete")
	}

	if err := m.broadcasts.Delete(ctx, id); err != nil {
		return fmt.Errorf("hard delete broadcast: %w", err)
	}

	m.log.WarnContext(ctx, "broadcast permanently deleted",
		slog.String("broadcast_id", id.String()),
		slog.String("actor", actor.String()),
	)
	return nil
}

// apply locks the row, runs guard against the locked state, snapshots it and
// writes patch, all in one transaction.
func (m *Manager) apply(
	ctx context.Context,
	id, actor uuid.UUID,
	reason string,
	guard func(*domain.Broadcast) error,
	patch domain.BroadcastPatch,
	now time.Time,
) (Transition, error) {
	var out Transition

	err := m.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := m.broadcasts.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock broadcast: %w", err)
		}
		if guard != nil {
			if err := guard(&current); err != nil {
				return err
			}
		}

		if _, err := m.versions.Snapshot(ctx, id, actor, &reason); err != nil {
			return err
		}

		b, err := m.broadcasts.Update(ctx, id, patch, now)
		if err != nil {
			return err
		}
		out = Transition{Broadcast: b, Changes: patch.Changes()}
		return nil
	})
	if err != nil {
		return Transition{}, err
	}
	return out, nil
}
