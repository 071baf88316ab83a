// Package broadcast orchestrates broadcast authoring, distribution and the
// per-viewer feed.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/event"
	"github.com/heartmarshall/council-backend/internal/service/lifecycle"
	"github.com/heartmarshall/council-backend/internal/service/readtracker"
	"github.com/heartmarshall/council-backend/pkg/ctxutil"
)

type broadcastRepo interface {
	Create(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BroadcastPatch, now time.Time) (domain.Broadcast, error)
	List(ctx context.Context, filter domain.BroadcastFilter, now time.Time) ([]domain.Broadcast, error)
	ListFeedCandidates(ctx context.Context, q domain.FeedQuery) ([]domain.Broadcast, error)
}

type audienceResolver interface {
	Matches(ctx context.Context, rule domain.AudienceRule, v *domain.Viewer) bool
	Rank(ctx context.Context, v *domain.Viewer) (int, error)
}

type readTracker interface {
	MarkRead(ctx context.Context, broadcastID, userID uuid.UUID) (readtracker.MarkReadResult, error)
	ReadBroadcastIDs(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]struct{}, error)
	Readers(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error)
}

type versionRecorder interface {
	Snapshot(ctx context.Context, broadcastID, changedBy uuid.UUID, reason *string) (domain.BroadcastVersion, error)
	History(ctx context.Context, broadcastID uuid.UUID) ([]domain.BroadcastVersion, error)
	Get(ctx context.Context, broadcastID uuid.UUID, number int) (domain.BroadcastVersion, error)
}

type lifecycleManager interface {
	Publish(ctx context.Context, id, actor uuid.UUID, sticky *bool) (lifecycle.Transition, error)
	SoftDelete(ctx context.Context, id, actor uuid.UUID) (lifecycle.Transition, error)
	Archive(ctx context.Context, id, actor uuid.UUID) (lifecycle.Transition, error)
	HardDelete(ctx context.Context, id, actor uuid.UUID, confirm bool) error
}

type analyticsSummarizer interface {
	Summarize(ctx context.Context) (domain.BroadcastAnalytics, error)
}

type publisher interface {
	Publish(ctx context.Context, e event.Event)
}

type notifier interface {
	NotifyBroadcast(ctx context.Context, b domain.Broadcast) error
}

const DefaultFeedLimit = 100

// Config holds the tunables of the service.
type Config struct {
	FeedLimit          int
	EmailNotifications bool
}

// Deps groups the collaborators of the service. Notifier may be nil when
// email notifications are disabled.
type Deps struct {
	Broadcasts broadcastRepo
	Audience   audienceResolver
	Reads      readTracker
	Versions   versionRecorder
	Lifecycle  lifecycleManager
	Analytics  analyticsSummarizer
	Events     publisher
	Notifier   notifier
}

// Service provides broadcast operations.
type Service struct {
	log        *slog.Logger
	cfg        Config
	broadcasts broadcastRepo
	audience   audienceResolver
	reads      readTracker
	versions   versionRecorder
	lifecycle  lifecycleManager
	analytics  analyticsSummarizer
	events     publisher
	notifier   notifier
	now        func() time.Time

	// background email sends
	wg sync.WaitGroup
}

// NewService creates a new broadcast service.
func NewService(log *slog.Logger, cfg Config, deps Deps) *Service {
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = DefaultFeedLimit
	}
	return &Service{
		log:        log.With("service", "broadcast"),
		cfg:        cfg,
		broadcasts: deps.Broadcasts,
		audience:   deps.Audience,
		reads:      deps.Reads,
		versions:   deps.Versions,
		lifecycle:  deps.Lifecycle,
		analytics:  deps.Analytics,
		events:     deps.Events,
		notifier:   deps.Notifier,
		now:        time.Now,
	}
}

// Wait blocks until background notification sends have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// ---------------------------------------------------------------------------
// Access control
// ---------------------------------------------------------------------------

// requireRank returns the caller's id when their highest role reaches role.
func (s *Service) requireRank(ctx context.Context, role domain.Role) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}

	rank, err := s.audience.Rank(ctx, domain.NewViewer(userID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve caller roles: %w", err)
	}
	if rank < role.Rank() {
		return uuid.Nil, domain.ErrForbidden
	}
	return userID, nil
}

// ---------------------------------------------------------------------------
// Side channels
// ---------------------------------------------------------------------------

func (s *Service) notify(ctx context.Context, b domain.Broadcast) {
	if !s.cfg.EmailNotifications || s.notifier == nil || b.IsDraft {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.WithoutCancel(ctx)
		if err := s.notifier.NotifyBroadcast(ctx, b); err != nil {
			s.log.WarnContext(ctx, "broadcast email failed",
				slog.String("broadcast_id", b.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// publishUpdate announces a change unless the broadcast was and remains a
// draft, which no viewer can see.
func (s *Service) publishUpdate(ctx context.Context, wasDraft bool, b domain.Broadcast, changes map[string]any) {
	if wasDraft && b.IsDraft {
		return
	}
	s.events.Publish(ctx, event.BroadcastUpdated(&b, changes, s.now()))
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// storeErr passes domain errors through and hides anything else behind a
// PersistenceError after logging it.
func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	if domain.IsKnown(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.log.ErrorContext(ctx, "broadcast store failure",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return domain.NewPersistenceError(op, err)
}
