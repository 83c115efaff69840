// Package model contains the plain data records passed between the engine's layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Action is the user's verdict on a piece of content.
type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

// ParseAction accepts like/dislike in any case.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionLike:
		return ActionLike, nil
	case ActionDislike:
		return ActionDislike, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// SwipeEvent is one like/dislike on a piece of content. Events are never mutated
// after they are recorded.
type SwipeEvent struct {
	ContentID string    `json:"contentId" yaml:"contentId"`
	GenreIDs  []int     `json:"genreIds" yaml:"genreIds"`
	Action    Action    `json:"action" yaml:"action"`
	SwipedAt  time.Time `json:"swipedAt" yaml:"swipedAt"`
}

// Liked reports whether the event is a like.
func (e SwipeEvent) Liked() bool { return e.Action == ActionLike }

// GenreCount is one entry of the ranked category list.
type GenreCount struct {
	Genre      string `json:"genre"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ContentTypeBreakdown splits liked events into movies and TV shows.
type ContentTypeBreakdown struct {
	Movies          int `json:"movies"`
	TVShows         int `json:"tvShows"`
	MoviePercentage int `json:"moviePercentage"`
	TVPercentage    int `json:"tvPercentage"`
}

// RecentActivity counts events of any action in trailing windows.
type RecentActivity struct {
	Last7Days  int `json:"last7Days"`
	Last30Days int `json:"last30Days"`
}

// SwipeStatistics is derived from a sequence of SwipeEvents and can be
// recomputed at any time. Percentages other than LikePercentage are taken over
// liked events only.
type SwipeStatistics struct {
	TotalSwipes          int                  `json:"totalSwipes"`
	TotalLikes           int                  `json:"totalLikes"`
	TotalDislikes        int                  `json:"totalDislikes"`
	LikePercentage       int                  `json:"likePercentage"`
	TopGenres            []GenreCount         `json:"topGenres"`
	GenreCounts          map[int]int          `json:"genreCounts"`
	ContentTypeBreakdown ContentTypeBreakdown `json:"contentTypeBreakdown"`
	RecentActivity       RecentActivity       `json:"recentActivity"`
	LastSwipeAt          *time.Time           `json:"lastSwipeAt,omitempty"`
}

// EmptyStatistics is the value returned for a user with no swipes.
func EmptyStatistics() SwipeStatistics {
	return SwipeStatistics{
		TopGenres:   []GenreCount{},
		GenreCounts: map[int]int{},
	}
}

// HasLikes reports whether any liked event contributed to the statistics.
func (s *SwipeStatistics) HasLikes() bool {
	return s != nil && s.TotalLikes > 0
}
