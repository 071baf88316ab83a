package broadcast

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

// Publish makes a draft visible. sticky nil keeps it in the feed.
func (s *Service) Publish(ctx context.Context, id uuid.UUID, sticky *bool) (domain.Broadcast, error) {
	actor, err := s.requireRank(ctx, domain.RoleCouncil)
	if err != nil {
		return domain.Broadcast{}, err
	}

	t, err := s.lifecycle.Publish(ctx, id, actor, sticky)
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "publish broadcast", err)
	}

	s.publishUpdate(ctx, true, t.Broadcast, t.Changes)
	s.notify(ctx, t.Broadcast)
	return t.Broadcast, nil
}

// SoftDelete hides a broadcast while keeping its history.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	actor, err := s.requireRank(ctx, domain.RoleCouncil)
	if err != nil {
		return domain.Broadcast{}, err
	}

	t, err := s.lifecycle.SoftDelete(ctx, id, actor)
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "soft delete broadcast", err)
	}

	s.publishUpdate(ctx, false, t.Broadcast, t.Changes)
	return t.Broadcast, nil
}

// Archive expires a broadcast now and drops it from the feed.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	actor, err := s.requireRank(ctx, domain.RoleCouncil)
	if err != nil {
		return domain.Broadcast{}, err
	}

	t, err := s.lifecycle.Archive(ctx, id, actor)
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "archive broadcast", err)
	}

	s.publishUpdate(ctx, false, t.Broadcast, t.Changes)
	return t.Broadcast, nil
}

// HardDelete permanently removes a broadcast. Sovereign only.
func (s *Service) HardDelete(ctx context.Context, id uuid.UUID, confirm bool) error {
	actor, err := s.requireRank(ctx, domain.RoleSovereign)
	if err != nil {
		return err
	}

	if err := s.lifecycle.HardDelete(ctx, id, actor, confirm); err != nil {
		return s.storeErr(ctx, "hard delete broadcast", err)
	}
	return nil
}
