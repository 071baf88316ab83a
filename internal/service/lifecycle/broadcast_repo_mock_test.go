package lifecycle

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
	"time"
)

var _ broadcastRepo = &broadcastRepoMock{}

type broadcastRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	UpdateFunc       func(ctx context.Context, id uuid.UUID, patch domain.BroadcastPatch, now time.Time) (domain.Broadcast, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Update []struct {
			Ctx   context.Context
			Id    uuid.UUID
			Patch domain.BroadcastPatch
			Now   time.Time
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetForUpdate sync.RWMutex
	lockUpdate       sync.RWMutex
	lockDelete       sync.RWMutex
}

func (mock *broadcastRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	if mock.GetForUpdateFunc == nil {
		panic("broadcastRepoMock.GetForUpdateFunc: method is nil but broadcastRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *broadcastRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *broadcastRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.BroadcastPatch, now time.Time) (domain.Broadcast, error) {
	if mock.UpdateFunc == nil {
		panic("broadcastRepoMock.UpdateFunc: method is nil but broadcastRepo.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    uuid.UUID
		Patch domain.BroadcastPatch
		Now   time.Time
	}{Ctx: ctx, Id: id, Patch: patch, Now: now}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch, now)
}

func (mock *broadcastRepoMock) UpdateCalls() []struct {
	Ctx   context.Context
	Id    uuid.UUID
	Patch domain.BroadcastPatch
	Now   time.Time
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *broadcastRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("broadcastRepoMock.DeleteFunc: method is nil but broadcastRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *broadcastRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
