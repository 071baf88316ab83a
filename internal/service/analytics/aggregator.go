// Package analytics summarizes broadcast reach.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/heartmarshall/council-backend/internal/domain"
)

const (
	activityWindowDays = 30
	dateLayout         = "2006-01-02"
)

type statsSource interface {
	ReadStats(ctx context.Context) ([]domain.BroadcastReadStat, error)
}

// Aggregator computes the broadcast analytics summary. It never writes.
type Aggregator struct {
	stats statsSource
	now   func() time.Time
}

// NewAggregator creates a new analytics aggregator.
func NewAggregator(stats statsSource) *Aggregator {
	return &Aggregator{stats: stats, now: time.Now}
}

// Summarize returns totals, the average read rate (reads per broadcast as a
// percentage, one decimal), per-type counts, and per-day creation counts for
// the last 30 UTC days in ascending date order.
func (a *Aggregator) Summarize(ctx context.Context) (domain.BroadcastAnalytics, error) {
	stats, err := a.stats.ReadStats(ctx)
	if err != nil {
		return domain.BroadcastAnalytics{}, fmt.Errorf("read stats: %w", err)
	}

	out := domain.BroadcastAnalytics{
		ByType:         make(map[domain.BroadcastType]domain.TypeStats),
		RecentActivity: []domain.DailyActivity{},
	}
	for _, t := range domain.AllBroadcastTypes() {
		out.ByType[t] = domain.TypeStats{}
	}

	today := a.now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -(activityWindowDays - 1))
	daily := make(map[string]int)

	for _, s := range stats {
		out.TotalBroadcasts++
		out.TotalReads += s.ReadCount

		ts := out.ByType[s.Type]
		ts.Count++
		ts.Reads += s.ReadCount
		out.ByType[s.Type] = ts

		created := s.CreatedAt.UTC()
		if !created.Before(windowStart) {
			daily[created.Format(dateLayout)]++
		}
	}

	if out.TotalBroadcasts > 0 {
		rate := float64(out.TotalReads) / float64(out.TotalBroadcasts) * 100
		out.AverageReadRate = math.Round(rate*10) / 10
	}

	for date, count := range daily {
		out.RecentActivity = append(out.RecentActivity, domain.DailyActivity{Date: date, Count: count})
	}
	sort.Slice(out.RecentActivity, func(i, j int) bool {
		return out.RecentActivity[i].Date < out.RecentActivity[j].Date
	})

	return out, nil
}
