package compatibility

import (
	"math"
	"sort"
	"strings"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
)

// Point caps of every sub-score. They add up to 100.
const (
	QuizCap            = 15.0
	SwipeGenreCap      = 25.0
	BingeCap           = 20.0
	ContentTypeCap     = 10.0
	EmotionalToneCap   = 10.0
	StreamingCap       = 10.0
	GenrePreferenceCap = 10.0

	neutralTone = EmotionalToneCap / 2
)

// QuizScore compares quiz vectors over the categories both users answered.
// It is QuizCap for identical vectors and 0 when nothing is shared.
func QuizScore(a, b model.CategoryScores) float64 {
	shared := make([]string, 0, len(a))
	for k := range a {
		if _, ok := b[k]; ok {
			shared = append(shared, k)
		}
	}
	if len(shared) == 0 {
		return 0
	}
	sort.Strings(shared)

	var sq float64
	for _, k := range shared {
		d := float64(a[k] - b[k])
		sq += d * d
	}
	rms := math.Sqrt(sq / float64(len(shared)))
	return QuizCap * clamp01(1-rms/100)
}

// SwipeGenreScore rewards top categories both users like, weighted by how
// much of each user's likes they take up.
func SwipeGenreScore(a, b *model.SwipeStatistics) float64 {
	if !a.HasLikes() || !b.HasLikes() {
		return 0
	}
	pb := make(map[string]int, len(b.TopGenres))
	for _, g := range b.TopGenres {
		pb[g.Genre] = g.Percentage
	}
	var overlap float64
	for _, g := range a.TopGenres {
		if p, ok := pb[g.Genre]; ok {
			overlap += float64(g.Percentage+p) / 200
		}
	}
	return SwipeGenreCap * clamp01(overlap)
}

// BingeScore falls linearly with the difference in episodes per sitting and
// reaches 0 at tolerance. Either count missing gives 0.
func BingeScore(a, b int, tolerance float64) float64 {
	if a <= 0 || b <= 0 || tolerance <= 0 {
		return 0
	}
	diff := math.Abs(float64(a - b))
	return BingeCap * math.Max(0, 1-diff/tolerance)
}

// ContentTypeScore compares the movie share of both users' likes.
func ContentTypeScore(a, b *model.SwipeStatistics) float64 {
	if !a.HasLikes() || !b.HasLikes() {
		return 0
	}
	diff := math.Abs(float64(a.ContentTypeBreakdown.MoviePercentage - b.ContentTypeBreakdown.MoviePercentage))
	return ContentTypeCap * clamp01(1-diff/100)
}

// EmotionalToneScore compares tone distributions. When either user has no
// tone signal the neutral half of the cap is returned.
func EmotionalToneScore(a, b Profile) float64 {
	ta, okA := toneOf(a)
	tb, okB := toneOf(b)
	if !okA || !okB {
		return neutralTone
	}
	return EmotionalToneCap * clamp01(1-ta.distance(tb))
}

// StreamingScore is the Jaccard overlap of streaming services, ignoring case.
func StreamingScore(a, b []string) float64 {
	return StreamingCap * jaccard(normalizeServices(a), normalizeServices(b))
}

// GenrePreferenceScore is the Jaccard overlap of declared favourite genre
// categories.
func GenrePreferenceScore(a, b []int) float64 {
	return GenrePreferenceCap * jaccard(favoriteCategories(a), favoriteCategories(b))
}

func normalizeServices(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.Join(strings.Fields(s), " "))
		if s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}

func favoriteCategories(ids []int) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if cat := taxonomy.Categorize(id); cat != taxonomy.Other {
			out[cat] = struct{}{}
		}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
