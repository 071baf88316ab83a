package broadcast

import (
	"context"
	"github.com/heartmarshall/council-backend/internal/domain"
	"sync"
)

var _ audienceResolver = &audienceResolverMock{}

type audienceResolverMock struct {
	MatchesFunc func(ctx context.Context, rule domain.AudienceRule, v *domain.Viewer) bool
	RankFunc    func(ctx context.Context, v *domain.Viewer) (int, error)

	calls struct {
		Matches []struct {
			Ctx  context.Context
			Rule domain.AudienceRule
			V    *domain.Viewer
		}
		Rank []struct {
			Ctx context.Context
			V   *domain.Viewer
		}
	}
	lockMatches sync.RWMutex
	lockRank    sync.RWMutex
}

func (mock *audienceResolverMock) Matches(ctx context.Context, rule domain.AudienceRule, v *domain.Viewer) bool {
	if mock.MatchesFunc == nil {
		panic("audienceResolverMock.MatchesFunc: method is nil but audienceResolver.Matches was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rule domain.AudienceRule
		V    *domain.Viewer
	}{Ctx: ctx, Rule: rule, V: v}
	mock.lockMatches.Lock()
	mock.calls.Matches = append(mock.calls.Matches, callInfo)
	mock.lockMatches.Unlock()
	return mock.MatchesFunc(ctx, rule, v)
}

func (mock *audienceResolverMock) MatchesCalls() []struct {
	Ctx  context.Context
	Rule domain.AudienceRule
	V    *domain.Viewer
} {
	mock.lockMatches.RLock()
	calls := mock.calls.Matches
	mock.lockMatches.RUnlock()
	return calls
}

func (mock *audienceResolverMock) Rank(ctx context.Context, v *domain.Viewer) (int, error) {
	if mock.RankFunc == nil {
		panic("audienceResolverMock.RankFunc: method is nil but audienceResolver.Rank was just called")
	}
	callInfo := struct {
		Ctx context.Context
		V   *domain.Viewer
	}{Ctx: ctx, V: v}
	mock.lockRank.Lock()
	mock.calls.Rank = append(mock.calls.Rank, callInfo)
	mock.lockRank.Unlock()
	return mock.RankFunc(ctx, v)
}

func (mock *audienceResolverMock) RankCalls() []struct {
	Ctx context.Context
	V   *domain.Viewer
} {
	mock.lockRank.RLock()
	calls := mock.calls.Rank
	mock.lockRank.RUnlock()
	return calls
}
