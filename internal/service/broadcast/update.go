package broadcast

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/council-backend/internal/domain"
)

// Update applies a partial edit. The broadcast's current content is stored
// as a version first; a failed snapshot aborts the edit.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Broadcast, error) {
	actor, err := s.requireRank(ctx, domain.RoleCouncil)
	if err != nil {
		return domain.Broadcast{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Broadcast{}, err
	}

	patch := input.Patch
	normalizePatch(&patch)

	before, err := s.broadcasts.GetByID(ctx, input.ID)
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "get broadcast", err)
	}

	merged := before
	patch.ApplyTo(&merged)
	if merged.IsDraft && merged.Sticky {
		patch.Sticky = domain.SetTo(false)
		merged.Sticky = false
	}
	if errs := checkSchedule(merged.ScheduledFor, merged.ExpiresAt); len(errs) > 0 && (patch.ScheduledFor.Set || patch.ExpiresAt.Set) {
		return domain.Broadcast{}, domain.NewValidationErrors(errs)
	}

	if _, err := s.versions.Snapshot(ctx, input.ID, actor, trimOrNil(input.Reason)); err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "snapshot broadcast", err)
	}

	now := s.now().UTC()
	updated, err := s.broadcasts.Update(ctx, input.ID, patch, now)
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "update broadcast", err)
	}

	s.publishUpdate(ctx, before.IsDraft, updated, patch.Changes())
	if before.IsDraft && !updated.IsDraft {
		s.notify(ctx, updated)
	}

	s.log.InfoContext(ctx, "broadcast updated",
		slog.String("broadcast_id", updated.ID.String()),
		slog.String("actor", actor.String()),
		slog.Int("fields", len(patch.Changes())),
	)
	return updated, nil
}
