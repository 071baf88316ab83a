package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/service/broadcast"
	"github.com/heartmarshall/council-backend/internal/service/readtracker"
	"sync"
)

var _ broadcastService = &broadcastServiceMock{}

type broadcastServiceMock struct {
	CreateFunc     func(ctx context.Context, input broadcast.CreateInput) (domain.Broadcast, error)
	UpdateFunc     func(ctx context.Context, input broadcast.UpdateInput) (domain.Broadcast, error)
	GetFunc        func(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	ListFunc       func(ctx context.Context, input broadcast.ListInput) ([]domain.Broadcast, error)
	FeedFunc       func(ctx context.Context) ([]domain.Broadcast, error)
	PublishFunc    func(ctx context.Context, id uuid.UUID, sticky *bool) (domain.Broadcast, error)
	SoftDeleteFunc func(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	ArchiveFunc    func(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	HardDeleteFunc func(ctx context.Context, id uuid.UUID, confirm bool) error
	MarkReadFunc   func(ctx context.Context, id uuid.UUID) (readtracker.MarkReadResult, error)
	ReadersFunc    func(ctx context.Context, id uuid.UUID) ([]domain.ReadReceipt, error)
	VersionsFunc   func(ctx context.Context, id uuid.UUID) ([]domain.BroadcastVersion, error)
	VersionFunc    func(ctx context.Context, id uuid.UUID, number int) (domain.BroadcastVersion, error)
	AnalyticsFunc  func(ctx context.Context) (domain.BroadcastAnalytics, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input broadcast.CreateInput
		}
		Update []struct {
			Ctx   context.Context
			Input broadcast.UpdateInput
		}
		Get []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input broadcast.ListInput
		}
		Feed []struct {
			Ctx context.Context
		}
		Publish []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Sticky *bool
		}
		SoftDelete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Archive []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		HardDelete []struct {
			Ctx     context.Context
			Id      uuid.UUID
			Confirm bool
		}
		MarkRead []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Readers []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Versions []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Version []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Number int
		}
		Analytics []struct {
			Ctx context.Context
		}
	}
	lockCreate     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockGet        sync.RWMutex
	lockList       sync.RWMutex
	lockFeed       sync.RWMutex
	lockPublish    sync.RWMutex
	lockSoftDelete sync.RWMutex
	lockArchive    sync.RWMutex
	lockHardDelete sync.RWMutex
	lockMarkRead   sync.RWMutex
	lockReaders    sync.RWMutex
	lockVersions   sync.RWMutex
	lockVersion    sync.RWMutex
	lockAnalytics  sync.RWMutex
}

func (mock *broadcastServiceMock) Create(ctx context.Context, input broadcast.CreateInput) (domain.Broadcast, error) {
	if mock.CreateFunc == nil {
		panic("broadcastServiceMock.CreateFunc: method is nil but broadcastService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input broadcast.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *broadcastServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input broadcast.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Update(ctx context.Context, input broadcast.UpdateInput) (domain.Broadcast, error) {
	if mock.UpdateFunc == nil {
		panic("broadcastServiceMock.UpdateFunc: method is nil but broadcastService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input broadcast.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *broadcastServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input broadcast.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Get(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	if mock.GetFunc == nil {
		panic("broadcastServiceMock.GetFunc: method is nil but broadcastService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *broadcastServiceMock) GetCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) List(ctx context.Context, input broadcast.ListInput) ([]domain.Broadcast, error) {
	if mock.ListFunc == nil {
		panic("broadcastServiceMock.ListFunc: method is nil but broadcastService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input broadcast.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *broadcastServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input broadcast.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Feed(ctx context.Context) ([]domain.Broadcast, error) {
	if mock.FeedFunc == nil {
		panic("broadcastServiceMock.FeedFunc: method is nil but broadcastService.Feed was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockFeed.Lock()
	mock.calls.Feed = append(mock.calls.Feed, callInfo)
	mock.lockFeed.Unlock()
	return mock.FeedFunc(ctx)
}

func (mock *broadcastServiceMock) FeedCalls() []struct {
	Ctx context.Context
} {
	mock.lockFeed.RLock()
	calls := mock.calls.Feed
	mock.lockFeed.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Publish(ctx context.Context, id uuid.UUID, sticky *bool) (domain.Broadcast, error) {
	if mock.PublishFunc == nil {
		panic("broadcastServiceMock.PublishFunc: method is nil but broadcastService.Publish was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Sticky *bool
	}{Ctx: ctx, Id: id, Sticky: sticky}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, id, sticky)
}

func (mock *broadcastServiceMock) PublishCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Sticky *bool
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) SoftDelete(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	if mock.SoftDeleteFunc == nil {
		panic("broadcastServiceMock.SoftDeleteFunc: method is nil but broadcastService.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *broadcastServiceMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Archive(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	if mock.ArchiveFunc == nil {
		panic("broadcastServiceMock.ArchiveFunc: method is nil but broadcastService.Archive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, id)
}

func (mock *broadcastServiceMock) ArchiveCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) HardDelete(ctx context.Context, id uuid.UUID, confirm bool) error {
	if mock.HardDeleteFunc == nil {
		panic("broadcastServiceMock.HardDeleteFunc: method is nil but broadcastService.HardDelete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Id      uuid.UUID
		Confirm bool
	}{Ctx: ctx, Id: id, Confirm: confirm}
	mock.lockHardDelete.Lock()
	mock.calls.HardDelete = append(mock.calls.HardDelete, callInfo)
	mock.lockHardDelete.Unlock()
	return mock.HardDeleteFunc(ctx, id, confirm)
}

func (mock *broadcastServiceMock) HardDeleteCalls() []struct {
	Ctx     context.Context
	Id      uuid.UUID
	Confirm bool
} {
	mock.lockHardDelete.RLock()
	calls := mock.calls.HardDelete
	mock.lockHardDelete.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) MarkRead(ctx context.Context, id uuid.UUID) (readtracker.MarkReadResult, error) {
	if mock.MarkReadFunc == nil {
		panic("broadcastServiceMock.MarkReadFunc: method is nil but broadcastService.MarkRead was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, id)
}

func (mock *broadcastServiceMock) MarkReadCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockMarkRead.RLock()
	calls := mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Readers(ctx context.Context, id uuid.UUID) ([]domain.ReadReceipt, error) {
	if mock.ReadersFunc == nil {
		panic("broadcastServiceMock.ReadersFunc: method is nil but broadcastService.Readers was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockReaders.Lock()
	mock.calls.Readers = append(mock.calls.Readers, callInfo)
	mock.lockReaders.Unlock()
	return mock.ReadersFunc(ctx, id)
}

func (mock *broadcastServiceMock) ReadersCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockReaders.RLock()
	calls := mock.calls.Readers
	mock.lockReaders.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Versions(ctx context.Context, id uuid.UUID) ([]domain.BroadcastVersion, error) {
	if mock.VersionsFunc == nil {
		panic("broadcastServiceMock.VersionsFunc: method is nil but broadcastService.Versions was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockVersions.Lock()
	mock.calls.Versions = append(mock.calls.Versions, callInfo)
	mock.lockVersions.Unlock()
	return mock.VersionsFunc(ctx, id)
}

func (mock *broadcastServiceMock) VersionsCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockVersions.RLock()
	calls := mock.calls.Versions
	mock.lockVersions.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Version(ctx context.Context, id uuid.UUID, number int) (domain.BroadcastVersion, error) {
	if mock.VersionFunc == nil {
		panic("broadcastServiceMock.VersionFunc: method is nil but broadcastService.Version was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Number int
	}{Ctx: ctx, Id: id, Number: number}
	mock.lockVersion.Lock()
	mock.calls.Version = append(mock.calls.Version, callInfo)
	mock.lockVersion.Unlock()
	return mock.VersionFunc(ctx, id, number)
}

func (mock *broadcastServiceMock) VersionCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Number int
} {
	mock.lockVersion.RLock()
	calls := mock.calls.Version
	mock.lockVersion.RUnlock()
	return calls
}

func (mock *broadcastServiceMock) Analytics(ctx context.Context) (domain.BroadcastAnalytics, error) {
	if mock.AnalyticsFunc == nil {
		panic("broadcastServiceMock.AnalyticsFunc: method is nil but broadcastService.Analytics was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockAnalytics.Lock()
	mock.calls.Analytics = append(mock.calls.Analytics, callInfo)
	mock.lockAnalytics.Unlock()
	return mock.AnalyticsFunc(ctx)
}

func (mock *broadcastServiceMock) AnalyticsCalls() []struct {
	Ctx context.Context
} {
	mock.lockAnalytics.RLock()
	calls := mock.calls.Analytics
	mock.lockAnalytics.RUnlock()
	return calls
}
