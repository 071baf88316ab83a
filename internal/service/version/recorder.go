// Package version keeps the append-only history of broadcast edits.
package version

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

const DefaultHistoryLimit = 200

type broadcastLocker interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
}

type versionRepo interface {
	Append(ctx context.Context, v domain.BroadcastVersion) (domain.BroadcastVersion, error)
	ListByBroadcast(ctx context.Context, broadcastID uuid.UUID, limit int) ([]domain.BroadcastVersion, error)
	Get(ctx context.Context, broadcastID uuid.UUID, number int) (domain.BroadcastVersion, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder snapshots a broadcast before it is changed.
type Recorder struct {
	log          *slog.Logger
	broadcasts   broadcastLocker
	versions     versionRepo
	tx           txManager
	historyLimit int
	now          func() time.Time
}

// NewRecorder creates a new version recorder. historyLimit caps History.
func NewRecorder(
	log *slog.Logger,
	broadcasts broadcastLocker,
	versions versionRepo,
	tx txManager,
	historyLimit int,
) *Recorder {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Recorder{
		log:          log.With("service", "version"),
		broadcasts:   broadcasts,
		versions:     versions,
		tx:           tx,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// Snapshot stores the broadcast's current content as the next version.
// The row lock taken inside the transaction serializes concurrent snapshots
// of one broadcast, so version numbers stay gapless and unique.
func (r *Recorder) Snapshot(ctx context.Context, broadcastID, changedBy uuid.UUID, reason *string) (domain.BroadcastVersion, error) {
	var out domain.BroadcastVersion

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := r.broadcasts.GetForUpdate(ctx, broadcastID)
		if err != nil {
			return fmt.Errorf("lock broadcast: %w", err)
		}

		out, err = r.versions.Append(ctx, domain.BroadcastVersion{
			ID:           uuid.New(),
			BroadcastID:  current.ID,
			Snapshot:     current.Snapshot(),
			ChangedBy:    changedBy,
			ChangedAt:    r.now().UTC(),
			ChangeReason: reason,
		})
		if err != nil {
			return fmt.Errorf("append version: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.BroadcastVersion{}, fmt.Errorf("snapshot broadcast: %w", err)
	}

	r.log.InfoContext(ctx, "broadcast version recorded",
		slog.String("broadcast_id", broadcastID.String()),
		slog.Int("version", out.VersionNumber),
		slog.String("changed_by", changedBy.String()),
	)
	return out, nil
}

// History returns the most recent versions, at most historyLimit of them,
// oldest first.
func (r *Recorder) History(ctx context.Context, broadcastID uuid.UUID) ([]domain.BroadcastVersion, error) {
	versions, err := r.versions.ListByBroadcast(ctx, broadcastID, r.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

// Get returns one version by number.
func (r *Recorder) Get(ctx context.Context, broadcastID uuid.UUID, number int) (domain.BroadcastVersion, error) {
	if number < 1 {
		return domain.BroadcastVersion{}, domain.NewValidationError("version", "must be positive")
	}
	v, err := r.versions.Get(ctx, broadcastID, number)
	if err != nil {
		return domain.BroadcastVersion{}, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}
