package broadcast

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/service/readtracker"
	"sync"
)

var _ readTracker = &readTrackerMock{}

type readTrackerMock struct {
	MarkReadFunc         func(ctx context.Context, broadcastID uuid.UUID, userID uuid.UUID) (readtracker.MarkReadResult, error)
	ReadBroadcastIDsFunc func(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]struct{}, error)
	ReadersFunc          func(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error)

	calls struct {
		MarkRead []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
			UserID      uuid.UUID
		}
		ReadBroadcastIDs []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			Candidates []uuid.UUID
		}
		Readers []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
		}
	}
	lockMarkRead         sync.RWMutex
	lockReadBroadcastIDs sync.RWMutex
	lockReaders          sync.RWMutex
}

func (mock *readTrackerMock) MarkRead(ctx context.Context, broadcastID uuid.UUID, userID uuid.UUID) (readtracker.MarkReadResult, error) {
	if mock.MarkReadFunc == nil {
		panic("readTrackerMock.MarkReadFunc: method is nil but readTracker.MarkRead was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
		UserID      uuid.UUID
	}{Ctx: ctx, BroadcastID: broadcastID, UserID: userID}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, broadcastID, userID)
}

func (mock *readTrackerMock) MarkReadCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
	UserID      uuid.UUID
} {
	mock.lockMarkRead.RLock()
	calls := mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}

func (mock *readTrackerMock) ReadBroadcastIDs(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if mock.ReadBroadcastIDsFunc == nil {
		panic("readTrackerMock.ReadBroadcastIDsFunc: method is nil but readTracker.ReadBroadcastIDs was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		Candidates []uuid.UUID
	}{Ctx: ctx, UserID: userID, Candidates: candidates}
	mock.lockReadBroadcastIDs.Lock()
	mock.calls.ReadBroadcastIDs = append(mock.calls.ReadBroadcastIDs, callInfo)
	mock.lockReadBroadcastIDs.Unlock()
	return mock.ReadBroadcastIDsFunc(ctx, userID, candidates)
}

func (mock *readTrackerMock) ReadBroadcastIDsCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	Candidates []uuid.UUID
} {
	mock.lockReadBroadcastIDs.RLock()
	calls := mock.calls.ReadBroadcastIDs
	mock.lockReadBroadcastIDs.RUnlock()
	return calls
}

func (mock *readTrackerMock) Readers(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error) {
	if mock.ReadersFunc == nil {
		panic("readTrackerMock.ReadersFunc: method is nil but readTracker.Readers was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
	}{Ctx: ctx, BroadcastID: broadcastID}
	mock.lockReaders.Lock()
	mock.calls.Readers = append(mock.calls.Readers, callInfo)
	mock.lockReaders.Unlock()
	return mock.ReadersFunc(ctx, broadcastID)
}

func (mock *readTrackerMock) ReadersCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
} {
	mock.lockReaders.RLock()
	calls := mock.calls.Readers
	mock.lockReaders.RUnlock()
	return calls
}
