package broadcast

import (
	"context"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
)

var _ analyticsSummarizer = &analyticsSummarizerMock{}

type analyticsSummarizerMock struct {
	SummarizeFunc func(ctx context.Context) (domain.BroadcastAnalytics, error)

	calls struct {
		Summarize []struct {
			Ctx context.Context
		}
	}
	lockSummarize sync.RWMutex
}

func (mock *analyticsSummarizerMock) Summarize(ctx context.Context) (domain.BroadcastAnalytics, error) {
	if mock.SummarizeFunc == nil {
		panic("analyticsSummarizerMock.SummarizeFunc: method is nil but analyticsSummarizer.Summarize was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockSummarize.Lock()
	mock.calls.Summarize = append(mock.calls.Summarize, callInfo)
	mock.lockSummarize.Unlock()
	return mock.SummarizeFunc(ctx)
}

func (mock *analyticsSummarizerMock) SummarizeCalls() []struct {
	Ctx context.Context
} {
	mock.lockSummarize.RLock()
	calls := mock.calls.Summarize
	mock.lockSummarize.RUnlock()
	return calls
}
