package notify

import (
	"context"
	"sync"
)

var _ audienceEmails = &audienceEmailsMock{}

type audienceEmailsMock struct {
	GetAudienceEmailsFunc func(ctx context.Context, audience string) ([]string, error)

	calls struct {
		GetAudienceEmails []struct {
			Ctx      context.Context
			Audience string
		}
	}
	lockGetAudienceEmails sync.RWMutex
}

func (mock *audienceEmailsMock) GetAudienceEmails(ctx context.Context, audience string) ([]string, error) {
	if mock.GetAudienceEmailsFunc == nil {
		panic("audienceEmailsMock.GetAudienceEmailsFunc: method is nil but audienceEmails.GetAudienceEmails was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Audience string
	}{Ctx: ctx, Audience: audience}
	mock.lockGetAudienceEmails.Lock()
	mock.calls.GetAudienceEmails = append(mock.calls.GetAudienceEmails, callInfo)
	mock.lockGetAudienceEmails.Unlock()
	return mock.GetAudienceEmailsFunc(ctx, audience)
}

func (mock *audienceEmailsMock) GetAudienceEmailsCalls() []struct {
	Ctx      context.Context
	Audience string
} {
	mock.lockGetAudienceEmails.RLock()
	calls := mock.calls.GetAudienceEmails
	mock.lockGetAudienceEmails.RUnlock()
	return calls
}
