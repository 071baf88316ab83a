package domain

import (
	"time"

	"github.com/google/uuid"
)

// BroadcastReadStat is one broadcast with its receipt count, the raw input of
// the analytics summary.
type BroadcastReadStat struct {
	ID        uuid.UUID
	Type      BroadcastType
	CreatedAt time.Time
	ReadCount int
}

// TypeStats aggregates broadcasts of one type.
type TypeStats struct {
	Count int `json:"count"`
	Reads int `json:"reads"`
}

// DailyActivity counts broadcasts created on one UTC calendar date.
type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BroadcastAnalytics is the read-rate and activity summary.
type BroadcastAnalytics struct {
	TotalBroadcasts int                         `json:"totalBroadcasts"`
	TotalReads      int                         `json:"totalReads"`
	AverageReadRate float64                     `json:"averageReadRate"`
	ByType          map[BroadcastType]TypeStats `json:"byType"`
	RecentActivity  []DailyActivity             `json:"recentActivity"`
}
