package broadcast

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/service/readtracker"
	"github.com/heartmarshall/council-backend/pkg/ctxutil"
)

// MarkRead records the caller's receipt. Repeats succeed with AlreadyRead.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (readtracker.MarkReadResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return readtracker.MarkReadResult{}, domain.ErrUnauthorized
	}

	res, err := s.reads.MarkRead(ctx, id, userID)
	if err != nil {
		return readtracker.MarkReadResult{}, s.storeErr(ctx, "mark broadcast read", err)
	}
	return res, nil
}

// Readers lists who has read a broadcast.
func (s *Service) Readers(ctx context.Context, id uuid.UUID) ([]domain.ReadReceipt, error) {
	if _, err := s.requireRank(ctx, domain.RoleCouncil); err != nil {
		return nil, err
	}
	if _, err := s.broadcasts.GetByID(ctx, id); err != nil {
		return nil, s.storeErr(ctx, "get broadcast", err)
	}

	receipts, err := s.reads.Readers(ctx, id)
	if err != nil {
		return nil, s.storeErr(ctx, "list readers", err)
	}
	return receipts, nil
}

// Versions lists the edit history of a broadcast, oldest first.
func (s *Service) Versions(ctx context.Context, id uuid.UUID) ([]domain.BroadcastVersion, error) {
	if _, err := s.requireRank(ctx, domain.RoleCouncil); err != nil {
		return nil, err
	}
	if _, err := s.broadcasts.GetByID(ctx, id); err != nil {
		return nil, s.storeErr(ctx, "get broadcast", err)
	}

	versions, err := s.versions.History(ctx, id)
	if err != nil {
		return nil, s.storeErr(ctx, "list versions", err)
	}
	return versions, nil
}

// Version returns one stored version.
func (s *Service) Version(ctx context.Context, id uuid.UUID, number int) (domain.BroadcastVersion, error) {
	if _, err := s.requireRank(ctx, domain.RoleCouncil); err != nil {
		return domain.BroadcastVersion{}, err
	}

	v, err := s.versions.Get(ctx, id, number)
	if err != nil {
		return domain.BroadcastVersion{}, s.storeErr(ctx, "get version", err)
	}
	return v, nil
}
