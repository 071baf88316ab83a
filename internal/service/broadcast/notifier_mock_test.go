package broadcast

import (
	"context"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyBroadcastFunc func(ctx context.Context, b domain.Broadcast) error

	calls struct {
		NotifyBroadcast []struct {
			Ctx context.Context
			B   domain.Broadcast
		}
	}
	lockNotifyBroadcast sync.RWMutex
}

func (mock *notifierMock) NotifyBroadcast(ctx context.Context, b domain.Broadcast) error {
	if mock.NotifyBroadcastFunc == nil {
		panic("notifierMock.NotifyBroadcastFunc: method is nil but notifier.NotifyBroadcast was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   domain.Broadcast
	}{Ctx: ctx, B: b}
	mock.lockNotifyBroadcast.Lock()
	mock.calls.NotifyBroadcast = append(mock.calls.NotifyBroadcast, callInfo)
	mock.lockNotifyBroadcast.Unlock()
	return mock.NotifyBroadcastFunc(ctx, b)
}

func (mock *notifierMock) NotifyBroadcastCalls() []struct {
	Ctx context.Context
	B   domain.Broadcast
} {
	mock.lockNotifyBroadcast.RLock()
	calls := mock.calls.NotifyBroadcast
	mock.lockNotifyBroadcast.RUnlock()
	return calls
}
