package readtracker

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
)

var _ receiptRepo = &receiptRepoMock{}

type receiptRepoMock struct {
	CreateFunc          func(ctx context.Context, rc domain.ReadReceipt) (domain.ReadReceipt, error)
	ExistsFunc          func(ctx context.Context, broadcastID uuid.UUID, userID uuid.UUID) (bool, error)
	ReadIDsFunc         func(ctx context.Context, userID uuid.UUID, broadcastIDs []uuid.UUID) ([]uuid.UUID, error)
	ListByBroadcastFunc func(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rc  domain.ReadReceipt
		}
		Exists []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
			UserID      uuid.UUID
		}
		ReadIDs []struct {
			Ctx          context.Context
			UserID       uuid.UUID
			BroadcastIDs []uuid.UUID
		}
		ListByBroadcast []struct {
			Ctx         context.Context
			BroadcastID uuid.UUID
		}
	}
	lockCreate          sync.RWMutex
	lockExists          sync.RWMutex
	lockReadIDs         sync.RWMutex
	lockListByBroadcast sync.RWMutex
}

func (mock *receiptRepoMock) Create(ctx context.Context, rc domain.ReadReceipt) (domain.ReadReceipt, error) {
	if mock.CreateFunc == nil {
		panic("receiptRepoMock.CreateFunc: method is nil but receiptRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rc  domain.ReadReceipt
	}{Ctx: ctx, Rc: rc}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rc)
}

func (mock *receiptRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rc  domain.ReadReceipt
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *receiptRepoMock) Exists(ctx context.Context, broadcastID uuid.UUID, userID uuid.UUID) (bool, error) {
	if mock.ExistsFunc == nil {
		panic("receiptRepoMock.ExistsFunc: method is nil but receiptRepo.Exists was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
		UserID      uuid.UUID
	}{Ctx: ctx, BroadcastID: broadcastID, UserID: userID}
	mock.lockExists.Lock()
	mock.calls.Exists = append(mock.calls.Exists, callInfo)
	mock.lockExists.Unlock()
	return mock.ExistsFunc(ctx, broadcastID, userID)
}

func (mock *receiptRepoMock) ExistsCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
	UserID      uuid.UUID
} {
	mock.lockExists.RLock()
	calls := mock.calls.Exists
	mock.lockExists.RUnlock()
	return calls
}

func (mock *receiptRepoMock) ReadIDs(ctx context.Context, userID uuid.UUID, broadcastIDs []uuid.UUID) ([]uuid.UUID, error) {
	if mock.ReadIDsFunc == nil {
		panic("receiptRepoMock.ReadIDsFunc: method is nil but receiptRepo.ReadIDs was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		UserID       uuid.UUID
		BroadcastIDs []uuid.UUID
	}{Ctx: ctx, UserID: userID, BroadcastIDs: broadcastIDs}
	mock.lockReadIDs.Lock()
	mock.calls.ReadIDs = append(mock.calls.ReadIDs, callInfo)
	mock.lockReadIDs.Unlock()
	return mock.ReadIDsFunc(ctx, userID, broadcastIDs)
}

func (mock *receiptRepoMock) ReadIDsCalls() []struct {
	Ctx          context.Context
	UserID       uuid.UUID
	BroadcastIDs []uuid.UUID
} {
	mock.lockReadIDs.RLock()
	calls := mock.calls.ReadIDs
	mock.lockReadIDs.RUnlock()
	return calls
}

func (mock *receiptRepoMock) ListByBroadcast(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error) {
	if mock.ListByBroadcastFunc == nil {
		panic("receiptRepoMock.ListByBroadcastFunc: method is nil but receiptRepo.ListByBroadcast was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		BroadcastID uuid.UUID
	}{Ctx: ctx, BroadcastID: broadcastID}
	mock.lockListByBroadcast.Lock()
	mock.calls.ListByBroadcast = append(mock.calls.ListByBroadcast, callInfo)
	mock.lockListByBroadcast.Unlock()
	return mock.ListByBroadcastFunc(ctx, broadcastID)
}

func (mock *receiptRepoMock) ListByBroadcastCalls() []struct {
	Ctx         context.Context
	BroadcastID uuid.UUID
} {
	mock.lockListByBroadcast.RLock()
	calls := mock.calls.ListByBroadcast
	mock.lockListByBroadcast.RUnlock()
	return calls
}
