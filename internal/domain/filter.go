package domain

import (
	"time"

	"github.com/google/uuid"
)

// BroadcastFilter contains filtering/pagination parameters for the admin list.
type BroadcastFilter struct {
	IncludeDrafts  bool
	IncludeExpired bool
	Limit          int
	Offset         int
}

// FeedQuery selects one page of feed candidates for a viewer. Broadcasts the
// viewer has already read are excluded by the store.
type FeedQuery struct {
	ViewerID uuid.UUID
	Now      time.Time
	Limit    int
	Offset   int
}
