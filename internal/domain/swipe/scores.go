package swipe

import (
	"math"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

// Saturation points of the swipe-derived scores.
const (
	diverseCategories = 5   // ranked categories for a full genre_diversity score
	engagedSwipes     = 100 // lifetime swipes for a full engagement score
	activeWeekSwipes  = 20  // swipes in the last week for a full viewing_habits score
)

// CategoryScores derives behavioral category scores from swipe statistics so
// users who skipped the quiz can still be classified. Categories without
// enough signal are left out rather than scored 0.
func CategoryScores(stats model.SwipeStatistics) model.CategoryScores {
	out := model.CategoryScores{}
	if stats.TotalSwipes == 0 {
		return out
	}

	out[model.CategoryEngagement] = saturate(stats.TotalSwipes, engagedSwipes)
	out[model.CategoryViewingHabits] = saturate(stats.RecentActivity.Last7Days, activeWeekSwipes)

	if stats.TotalLikes == 0 {
		return out
	}
	out[model.CategoryGenreDiversity] = saturate(len(stats.TopGenres), diverseCategories)
	out[model.CategoryBingeTendency] = stats.ContentTypeBreakdown.TVPercentage
	if len(stats.TopGenres) > 0 {
		out[model.CategoryDiscovery] = 100 - stats.TopGenres[0].Percentage
	}
	return out
}

func saturate(n, full int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(math.Min(1, float64(n)/float64(full)) * 100))
}

// MergeScores overlays quiz answers on swipe-derived scores. Quiz values win
// per category; the result is a fresh map.
func MergeScores(quiz, derived model.CategoryScores) model.CategoryScores {
	out := make(model.CategoryScores, len(quiz)+len(derived))
	for k, v := range derived {
		out[k] = v
	}
	for k, v := range quiz {
		out[k] = v
	}
	return out
}
