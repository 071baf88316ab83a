package broadcast

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
)

var _ versionRecorder = &versionRecorderMock{}

type versionRecorderMock struct {
	SnapshotFunc func(ctx context.Context, broadcastID uuid.UUID, changedBy uuid.UUID, reason *string) (domain.BroadcastVersion, error)
	HistoryFunc  func(ctx context.Context, broadcastID uuid.UUID) ([]domain.BroadcastVersion, error)
	GetFunc      func(ctx context.Context, broadcastID uuid.UUID, number int) (domain.BroadcastVersion, error)

	calls struct {
		Snapshot []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
			ChangedBy   uuid.UUID
			Reason      *string
		}
		History []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
		}
		Get []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
			Number      int
		}
	}
	lockSnapshot sync.RWMutex
	lockHistory  sync.RWMutex
	lockGet      sync.RWMutex
}

func (mock *versionRecorderMock) Snapshot(ctx context.Context, broadcastID uuid.UUID, changedBy uuid.UUID, reason *string) (domain.BroadcastVersion, error) {
	if mock.SnapshotFunc == nil {
		panic("versionRecorderMock.SnapshotFunc: method is nil but versionRecorder.Snapshot was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
		ChangedBy   uuid.UUID
		Reason      *string
	}{Ctx: ctx, BroadcastID: broadcastID, ChangedBy: changedBy, Reason: reason}
	mock.lockSnapshot.Lock()
	mock.calls.Snapshot = append(mock.calls.Snapshot, callInfo)
	mock.lockSnapshot.Unlock()
	return mock.SnapshotFunc(ctx, broadcastID, changedBy, reason)
}

func (mock *versionRecorderMock) SnapshotCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
	ChangedBy   uuid.UUID
	Reason      *string
} {
	mock.lockSnapshot.RLock()
	calls := mock.calls.Snapshot
	mock.lockSnapshot.RUnlock()
	return calls
}

func (mock *versionRecorderMock) History(ctx context.Context, broadcastID uuid.UUID) ([]domain.BroadcastVersion, error) {
	if mock.HistoryFunc == nil {
		panic("versionRecorderMock.HistoryFunc: method is nil but versionRecorder.History was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
	}{Ctx: ctx, BroadcastID: broadcastID}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, broadcastID)
}

func (mock *versionRecorderMock) HistoryCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}

func (mock *versionRecorderMock) Get(ctx context.Context, broadcastID uuid.UUID, number int) (domain.BroadcastVersion, error) {
	if mock.GetFunc == nil {
		panic("versionRecorderMock.GetFunc: method is nil but versionRecorder.Get was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
		Number      int
	}{Ctx: ctx, BroadcastID: broadcastID, Number: number}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, broadcastID, number)
}

func (mock *versionRecorderMock) GetCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
	Number      int
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
