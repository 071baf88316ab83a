package broadcast

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/council-backend/internal/service/lifecycle"
	"sync"
)

var _ lifecycleManager = &lifecycleManagerMock{}

type lifecycleManagerMock struct {
	PublishFunc    func(ctx context.Context, id uuid.UUID, actor uuid.UUID, sticky *bool) (lifecycle.Transition, error)
	SoftDeleteFunc func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (lifecycle.Transition, error)
	ArchiveFunc    func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (lifecycle.Transition, error)
	HardDeleteFunc func(ctx context.Context, id uuid.UUID, actor uuid.UUID, confirm bool) error

	calls struct {
		Publish []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Actor  uuid.UUID
			Sticky *bool
		}
		SoftDelete []struct {
			Ctx   context.Context
			Id    uuid.UUID
			Actor uuid.UUID
		}
		Archive []struct {
			Ctx   context.Context
			Id    uuid.UUID
			Actor uuid.UUID
		}
		HardDelete []struct {
			Ctx     context.Context
			Id      uuid.UUID
			Actor   uuid.UUID
			Confirm bool
		}
	}
	lockPublish    sync.RWMutex
	lockSoftDelete sync.RWMutex
	lockArchive    sync.RWMutex
	lockHardDelete sync.RWMutex
}

func (mock *lifecycleManagerMock) Publish(ctx context.Context, id uuid.UUID, actor uuid.UUID, sticky *bool) (lifecycle.Transition, error) {
	if mock.PublishFunc == nil {
		panic("lifecycleManagerMock.PublishFunc: method is nil but lifecycleManager.Publish was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Actor  uuid.UUID
		Sticky *bool
	}{Ctx: ctx, Id: id, Actor: actor, Sticky: sticky}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, id, actor, sticky)
}

func (mock *lifecycleManagerMock) PublishCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Actor  uuid.UUID
	Sticky *bool
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}

func (mock *lifecycleManagerMock) SoftDelete(ctx context.Context, id uuid.UUID, actor uuid.UUID) (lifecycle.Transition, error) {
	if mock.SoftDeleteFunc == nil {
		panic("lifecycleManagerMock.SoftDeleteFunc: method is nil but lifecycleManager.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    uuid.UUID
		Actor uuid.UUID
	}{Ctx: ctx, Id: id, Actor: actor}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id, actor)
}

func (mock *lifecycleManagerMock) SoftDeleteCalls() []struct {
	Ctx   context.Context
	Id    uuid.UUID
	Actor uuid.UUID
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *lifecycleManagerMock) Archive(ctx context.Context, id uuid.UUID, actor uuid.UUID) (lifecycle.Transition, error) {
	if mock.ArchiveFunc == nil {
		panic("lifecycleManagerMock.ArchiveFunc: method is nil but lifecycleManager.Archive was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    uuid.UUID
		Actor uuid.UUID
	}{Ctx: ctx, Id: id, Actor: actor}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, id, actor)
}

func (mock *lifecycleManagerMock) ArchiveCalls() []struct {
	Ctx   context.Context
	Id    uuid.UUID
	Actor uuid.UUID
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *lifecycleManagerMock) HardDelete(ctx context.Context, id uuid.UUID, actor uuid.UUID, confirm bool) error {
	if mock.HardDeleteFunc == nil {
		panic("lifecycleManagerMock.HardDeleteFunc: method is nil but lifecycleManager.HardDelete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Id      uuid.UUID
		Actor   uuid.UUID
		Confirm bool
	}{Ctx: ctx, Id: id, Actor: actor, Confirm: confirm}
	mock.lockHardDelete.Lock()
	mock.calls.HardDelete = append(mock.calls.HardDelete, callInfo)
	mock.lockHardDelete.Unlock()
	return mock.HardDeleteFunc(ctx, id, actor, confirm)
}

func (mock *lifecycleManagerMock) HardDeleteCalls() []struct {
	Ctx     context.Context
	Id      uuid.UUID
	Actor   uuid.UUID
	Confirm bool
} {
	mock.lockHardDelete.RLock()
	calls := mock.calls.HardDelete
	mock.lockHardDelete.RUnlock()
	return calls
}
