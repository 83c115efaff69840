// Package swipe turns a user's raw swipe history into preference statistics.
package swipe

import (
	"math"
	"sort"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
)

const (
	defaultTopGenres = 5
	day              = 24 * time.Hour
	weekWindow       = 7 * day
	monthWindow      = 30 * day
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithClock sets the source of "now" used by the recency windows.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithTopGenres sets how many ranked categories are kept.
func WithTopGenres(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.topN = n
		}
	}
}

// Analyzer aggregates swipe events. It holds no per-call state and is safe
// for concurrent use.
type Analyzer struct {
	now  func() time.Time
	topN int
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		now:  time.Now,
		topN: defaultTopGenres,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes statistics over events in a single pass. An empty input
// yields model.EmptyStatistics().
func (a *Analyzer) Analyze(events []model.SwipeEvent) model.SwipeStatistics {
	stats := model.EmptyStatistics()
	if len(events) == 0 {
		return stats
	}

	now := a.now()
	weekStart := now.Add(-weekWindow)
	monthStart := now.Add(-monthWindow)

	categoryCounts := make(map[string]int)
	var last time.Time
	seen := make([]string, 0, 4)

	for _, e := range events {
		stats.TotalSwipes++

		if !e.SwipedAt.IsZero() {
			if e.SwipedAt.After(last) {
				last = e.SwipedAt
			}
			if !e.SwipedAt.After(now) {
				if !e.SwipedAt.Before(weekStart) {
					stats.RecentActivity.Last7Days++
				}
				if !e.SwipedAt.Before(monthStart) {
					stats.RecentActivity.Last30Days++
				}
			}
		}

		if !e.Liked() {
			stats.TotalDislikes++
			continue
		}
		stats.TotalLikes++

		tv := false
		seen = seen[:0]
		for _, id := range e.GenreIDs {
			stats.GenreCounts[id]++
			if taxonomy.IsTVGenre(id) {
				tv = true
			}
			cat := taxonomy.Categorize(id)
			if contains(seen, cat) {
				continue
			}
			seen = append(seen, cat)
			categoryCounts[cat]++
		}
		if tv {
			stats.ContentTypeBreakdown.TVShows++
		} else {
			stats.ContentTypeBreakdown.Movies++
		}
	}

	if !last.IsZero() {
		stats.LastSwipeAt = &last
	}
	stats.LikePercentage = percent(stats.TotalLikes, stats.TotalSwipes)
	if stats.TotalLikes > 0 {
		stats.ContentTypeBreakdown.MoviePercentage = percent(stats.ContentTypeBreakdown.Movies, stats.TotalLikes)
		stats.ContentTypeBreakdown.TVPercentage = 100 - stats.ContentTypeBreakdown.MoviePercentage
	}
	stats.TopGenres = a.rank(categoryCounts, stats.TotalLikes)
	return stats
}

// rank orders categories by count desc, then name asc, and keeps topN.
func (a *Analyzer) rank(counts map[string]int, totalLiked int) []model.GenreCount {
	out := make([]model.GenreCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, model.GenreCount{Genre: cat, Count: n, Percentage: percent(n, totalLiked)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > a.topN {
		out = out[:a.topN]
	}
	return out
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Append returns a new sequence holding events followed by more. Neither
// argument is modified.
func Append(events []model.SwipeEvent, more ...model.SwipeEvent) []model.SwipeEvent {
	out := make([]model.SwipeEvent, 0, len(events)+len(more))
	out = append(out, events...)
	return append(out, more...)
}
