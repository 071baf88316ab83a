package broadcast

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/pkg/ctxutil"
)

// Get returns one broadcast. Council members and above see every row; other
// callers only see live broadcasts addressed to them and get ErrNotFound
// otherwise.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Broadcast{}, domain.ErrUnauthorized
	}

	b, err := s.broadcasts.GetByID(ctx, id)
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "get broadcast", err)
	}

	viewer := domain.NewViewer(userID)
	rank, err := s.audience.Rank(ctx, viewer)
	if err != nil {
		s.log.WarnContext(ctx, "role lookup failed, treating caller as unprivileged",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
	if err == nil && rank >= domain.RoleCouncil.Rank() {
		return b, nil
	}

	now := s.now()
	if domain.StateAt(&b, now) != domain.StateActive || domain.IsScheduledAt(&b, now) {
		return domain.Broadcast{}, domain.ErrNotFound
	}
	if !s.audience.Matches(ctx, b.AudienceRule(), viewer) {
		return domain.Broadcast{}, domain.ErrNotFound
	}
	return b, nil
}

// List returns broadcasts for administration, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Broadcast, error) {
	if _, err := s.requireRank(ctx, domain.RoleCouncil); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	items, err := s.broadcasts.List(ctx, domain.BroadcastFilter{
		IncludeDrafts:  input.IncludeDrafts,
		IncludeExpired: input.IncludeExpired,
		Limit:          input.Limit,
		Offset:         input.Offset,
	}, s.now())
	if err != nil {
		return nil, s.storeErr(ctx, "list broadcasts", err)
	}
	return items, nil
}

// Feed returns the caller's unread, live broadcasts, most urgent first and
// newest first within a priority. Candidates are read page by page until
// FeedLimit broadcasts pass the audience check or the store runs out, so
// read or foreign-audience rows at the top never crowd out older matches.
func (s *Service) Feed(ctx context.Context) ([]domain.Broadcast, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := s.now()
	limit := s.cfg.FeedLimit
	pageSize := min(limit, MaxListLimit)
	viewer := domain.NewViewer(userID)
	feed := make([]domain.Broadcast, 0, pageSize)

	for offset := 0; len(feed) < limit; offset += pageSize {
		page, err := s.broadcasts.ListFeedCandidates(ctx, domain.FeedQuery{
			ViewerID: userID,
			Now:      now,
			Limit:    pageSize,
			Offset:   offset,
		})
		if err != nil {
			return nil, s.storeErr(ctx, "list feed candidates", err)
		}
		if len(page) == 0 {
			break
		}

		matched, err := s.filterFeedPage(ctx, page, viewer, now)
		if err != nil {
			return nil, err
		}
		feed = append(feed, matched...)

		if len(page) < pageSize {
			break
		}
	}

	sortFeed(feed)
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

// filterFeedPage applies the predicates the store cannot: audience, and
// receipts written after the page was selected.
func (s *Service) filterFeedPage(ctx context.Context, page []domain.Broadcast, viewer *domain.Viewer, now time.Time) ([]domain.Broadcast, error) {
	ids := make([]uuid.UUID, len(page))
	for i := range page {
		ids[i] = page[i].ID
	}
	read, err := s.reads.ReadBroadcastIDs(ctx, viewer.ID, ids)
	if err != nil {
		return nil, s.storeErr(ctx, "load read receipts", err)
	}

	out := make([]domain.Broadcast, 0, len(page))
	for _, b := range page {
		if !domain.IsFeedCandidate(&b, now) {
			continue
		}
		if _, seen := read[b.ID]; seen {
			continue
		}
		if !s.audience.Matches(ctx, b.AudienceRule(), viewer) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func sortFeed(feed []domain.Broadcast) {
	sort.SliceStable(feed, func(i, j int) bool {
		wi, wj := feed[i].Priority.Weight(), feed[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
}

// Analytics returns the reach summary.
func (s *Service) Analytics(ctx context.Context) (domain.BroadcastAnalytics, error) {
	if _, err := s.requireRank(ctx, domain.RoleCouncil); err != nil {
		return domain.BroadcastAnalytics{}, err
	}

	summary, err := s.analytics.Summarize(ctx)
	if err != nil {
		return domain.BroadcastAnalytics{}, s.storeErr(ctx, "summarize broadcasts", err)
	}
	return summary, nil
}
