package analytics

import (
	"context"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
)

var _ statsSource = &statsSourceMock{}

type statsSourceMock struct {
	ReadStatsFunc func(ctx context.Context) ([]domain.BroadcastReadStat, error)

	calls struct {
		ReadStats []struct {
			Ctx context.Context
		}
	}
	lockReadStats sync.RWMutex
}

func (mock *statsSourceMock) ReadStats(ctx context.Context) ([]domain.BroadcastReadStat, error) {
	if mock.ReadStatsFunc == nil {
		panic("statsSourceMock.ReadStatsFunc: method is nil but statsSource.ReadStats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockReadStats.Lock()
	mock.calls.ReadStats = append(mock.calls.ReadStats, callInfo)
	mock.lockReadStats.Unlock()
	return mock.ReadStatsFunc(ctx)
}

func (mock *statsSourceMock) ReadStatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockReadStats.RLock()
	calls := mock.calls.ReadStats
	mock.lockReadStats.RUnlock()
	return calls
}
