// Package compatibility scores how well two users fit together as a sum of
// independently capped sub-scores.
package compatibility

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

const (
	defaultBingeTolerance = 10.0
	maxOverall            = 100
)

// Profile is everything the scorer knows about one side of a pair.
type Profile struct {
	UserID            string
	QuizScores        model.CategoryScores
	Swipes            *model.SwipeStatistics
	BingeCount        int
	Mood              string
	StreamingServices []string
	FavoriteGenres    []int
}

// ProfileOf builds a Profile from a user record and its analyzed swipes.
func ProfileOf(u model.User, stats *model.SwipeStatistics) Profile {
	return Profile{
		UserID:            u.ID,
		QuizScores:        u.QuizScores,
		Swipes:            stats,
		BingeCount:        u.BingeCount,
		Mood:              u.Mood,
		StreamingServices: u.StreamingServices,
		FavoriteGenres:    u.FavoriteGenres,
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithBingeTolerance sets the episodes-per-sitting gap at which the binge
// sub-score reaches 0.
func WithBingeTolerance(episodes float64) Option {
	return func(s *Scorer) {
		if episodes > 0 {
			s.bingeTolerance = episodes
		}
	}
}

// Scorer computes CompatibilityResults. It is stateless after construction.
type Scorer struct {
	bingeTolerance float64
}

// NewScorer creates a Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{bingeTolerance: defaultBingeTolerance}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score compares a and b. The overall score is the rounded sum of the capped
// sub-scores. Missing signals contribute 0; only out-of-range quiz scores
// are an error.
func (s *Scorer) Score(a, b Profile) (model.CompatibilityResult, error) {
	if err := checkScores(a); err != nil {
		return model.CompatibilityResult{}, err
	}
	if err := checkScores(b); err != nil {
		return model.CompatibilityResult{}, err
	}

	sub := model.SubScores{
		Quiz:            round2(QuizScore(a.QuizScores, b.QuizScores)),
		SwipeGenre:      round2(SwipeGenreScore(a.Swipes, b.Swipes)),
		Binge:           round2(BingeScore(a.BingeCount, b.BingeCount, s.bingeTolerance)),
		ContentType:     round2(ContentTypeScore(a.Swipes, b.Swipes)),
		EmotionalTone:   round2(EmotionalToneScore(a, b)),
		Streaming:       round2(StreamingScore(a.StreamingServices, b.StreamingServices)),
		GenrePreference: round2(GenrePreferenceScore(a.FavoriteGenres, b.FavoriteGenres)),
	}

	overall := int(math.Round(sub.Total()))
	if overall > maxOverall {
		overall = maxOverall
	}
	if overall < 0 {
		overall = 0
	}

	return model.CompatibilityResult{
		OverallScore: overall,
		SubScores:    sub,
		Description:  Describe(sub, toneKnown(a, b)),
	}, nil
}

func checkScores(p Profile) error {
	keys := make([]string, 0, len(p.QuizScores))
	for k := range p.QuizScores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := p.QuizScores[k]; v < 0 || v > 100 {
			return fmt.Errorf("%w: user %s %s=%d", ErrScoreOutOfRange, p.UserID, k, v)
		}
	}
	return nil
}

func toneKnown(a, b Profile) bool {
	_, okA := toneOf(a)
	_, okB := toneOf(b)
	return okA && okB
}

const fallbackDescription = "Not enough shared signals yet to explain this match."

type contribution struct {
	points float64
	phrase string
}

// Describe names the one or two largest contributions. The emotional tone is
// only mentioned when it came from real signals rather than the neutral default.
func Describe(sub model.SubScores, toneFromSignals bool) string {
	parts := []contribution{
		{sub.SwipeGenre, "overlapping favourite genres"},
		{sub.Binge, "a matching binge-watching rhythm"},
		{sub.Quiz, "similar taste-quiz answers"},
		{sub.ContentType, "the same movie-versus-series balance"},
		{sub.Streaming, "shared streaming services"},
		{sub.GenrePreference, "the same declared favourite genres"},
	}
	if toneFromSignals {
		parts = append(parts, contribution{sub.EmotionalTone, "a similar emotional taste in stories"})
	}

	top := make([]contribution, 0, len(parts))
	for _, p := range parts {
		if p.points > 0 {
			top = append(top, p)
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].points > top[j].points })

	switch {
	case len(top) == 0:
		return fallbackDescription
	case len(top) == 1:
		return "You connect through " + top[0].phrase + "."
	default:
		return "You connect through " + strings.Join([]string{top[0].phrase, top[1].phrase}, " and ") + "."
	}
}
