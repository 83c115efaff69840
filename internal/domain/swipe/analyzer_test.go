package swipe_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/swipe"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func like(id string, ago time.Duration, genres ...int) model.SwipeEvent {
	return model.SwipeEvent{ContentID: id, GenreIDs: genres, Action: model.ActionLike, SwipedAt: now.Add(-ago)}
}

func dislike(id string, ago time.Duration, genres ...int) model.SwipeEvent {
	return model.SwipeEvent{ContentID: id, GenreIDs: genres, Action: model.ActionDislike, SwipedAt: now.Add(-ago)}
}

func TestAnalyze(t *testing.T) {
	Convey("Given an analyzer with a fixed clock", t, func() {
		a := swipe.NewAnalyzer(swipe.WithClock(fixedClock))

		Convey("When the history is empty", func() {
			stats := a.Analyze(nil)

			Convey("Then the empty record is returned", func() {
				So(stats.TotalSwipes, ShouldEqual, 0)
				So(stats.TotalLikes, ShouldEqual, 0)
				So(stats.LikePercentage, ShouldEqual, 0)
				So(stats.TopGenres, ShouldNotBeNil)
				So(stats.TopGenres, ShouldBeEmpty)
				So(stats.ContentTypeBreakdown, ShouldResemble, model.ContentTypeBreakdown{})
				So(stats.LastSwipeAt, ShouldBeNil)
			})
		})

		Convey("When a user liked 4 action movies and 1 comedy", func() {
			events := []model.SwipeEvent{
				like("m1", time.Hour, 28),
				like("m2", 2*time.Hour, 28),
				like("m3", 3*time.Hour, 12),
				like("m4", 4*time.Hour, 28),
				like("m5", 5*time.Hour, 35),
			}
			stats := a.Analyze(events)

			Convey("Then Action leads with 80 percent", func() {
				So(stats.TopGenres[0], ShouldResemble, model.GenreCount{Genre: taxonomy.Action, Count: 4, Percentage: 80})
				So(stats.TopGenres[1], ShouldResemble, model.GenreCount{Genre: taxonomy.Comedy, Count: 1, Percentage: 20})
			})

			Convey("Then specific genre counters are kept", func() {
				So(stats.GenreCounts[28], ShouldEqual, 3)
				So(stats.GenreCounts[12], ShouldEqual, 1)
			})

			Convey("Then everything is a movie", func() {
				So(stats.ContentTypeBreakdown.Movies, ShouldEqual, 5)
				So(stats.ContentTypeBreakdown.MoviePercentage, ShouldEqual, 100)
				So(stats.ContentTypeBreakdown.TVPercentage, ShouldEqual, 0)
			})

			Convey("Then the most recent swipe is reported", func() {
				So(*stats.LastSwipeAt, ShouldEqual, now.Add(-time.Hour))
			})
		})

		Convey("When events mix likes, dislikes and TV genres", func() {
			events := []model.SwipeEvent{
				like("s1", time.Hour, 18, 10766),
				like("m1", 10*24*time.Hour, 18),
				like("m2", 40*24*time.Hour),
				dislike("m3", 2*24*time.Hour, 27),
			}
			stats := a.Analyze(events)

			Convey("Then like counts and percentage are computed over all swipes", func() {
				So(stats.TotalSwipes, ShouldEqual, 4)
				So(stats.TotalLikes, ShouldEqual, 3)
				So(stats.TotalDislikes, ShouldEqual, 1)
				So(stats.LikePercentage, ShouldEqual, 75)
			})

			Convey("Then a TV-flagged id makes the whole event TV", func() {
				So(stats.ContentTypeBreakdown.TVShows, ShouldEqual, 1)
				So(stats.ContentTypeBreakdown.Movies, ShouldEqual, 2)
				So(stats.ContentTypeBreakdown.MoviePercentage, ShouldEqual, 67)
				So(stats.ContentTypeBreakdown.TVPercentage, ShouldEqual, 33)
			})

			Convey("Then a category is counted once per event", func() {
				So(stats.TopGenres[0], ShouldResemble, model.GenreCount{Genre: taxonomy.Drama, Count: 2, Percentage: 67})
			})

			Convey("Then disliked genres do not count", func() {
				So(stats.GenreCounts, ShouldNotContainKey, 27)
			})

			Convey("Then recency windows count any action", func() {
				So(stats.RecentActivity.Last7Days, ShouldEqual, 2)
				So(stats.RecentActivity.Last30Days, ShouldEqual, 3)
			})
		})

		Convey("When only dislikes are present", func() {
			stats := a.Analyze([]model.SwipeEvent{dislike("m1", time.Hour, 28)})

			Convey("Then all liked percentages are zero", func() {
				So(stats.LikePercentage, ShouldEqual, 0)
				So(stats.TopGenres, ShouldBeEmpty)
				So(stats.ContentTypeBreakdown.MoviePercentage, ShouldEqual, 0)
				So(stats.ContentTypeBreakdown.TVPercentage, ShouldEqual, 0)
			})
		})

		Convey("When more than five categories are liked", func() {
			events := []model.SwipeEvent{
				like("a", time.Hour, 28), like("b", time.Hour, 28),
				like("c", time.Hour, 35), like("d", time.Hour, 18),
				like("e", time.Hour, 27), like("f", time.Hour, 80),
				like("g", time.Hour, 16), like("h", time.Hour, 99),
			}
			stats := a.Analyze(events)

			Convey("Then five are kept, ties broken by name", func() {
				So(stats.TopGenres, ShouldHaveLength, 5)
				names := []string{}
				for _, g := range stats.TopGenres {
					names = append(names, g.Genre)
				}
				So(names, ShouldResemble, []string{taxonomy.Action, taxonomy.Animation, taxonomy.Comedy, taxonomy.Crime, taxonomy.Documentary})
			})
		})
	})
}

func TestAnalyzeProperties(t *testing.T) {
	Convey("Given random swipe histories", t, func() {
		a := swipe.NewAnalyzer(swipe.WithClock(fixedClock))
		rng := rand.New(rand.NewSource(7))
		pool := []int{28, 12, 35, 18, 27, 53, 80, 878, 16, 10751, 99, 10749, 10759, 10765, 10764, 4242}

		for round := 0; round < 50; round++ {
			n := rng.Intn(40)
			events := make([]model.SwipeEvent, 0, n)
			for i := 0; i < n; i++ {
				genres := []int{pool[rng.Intn(len(pool))]}
				ev := like(fmt.Sprintf("c%d", i), time.Duration(rng.Intn(60*24))*time.Hour, genres...)
				if rng.Intn(3) == 0 {
					ev.Action = model.ActionDislike
				}
				events = append(events, ev)
			}
			stats := a.Analyze(events)

			So(stats.LikePercentage, ShouldBeBetweenOrEqual, 0, 100)
			if stats.TotalSwipes > 0 {
				So(stats.LikePercentage, ShouldEqual, int(math.Round(float64(stats.TotalLikes)*100/float64(stats.TotalSwipes))))
			}

			sum := 0
			for i, g := range stats.TopGenres {
				sum += g.Count
				So(g.Percentage, ShouldBeBetweenOrEqual, 0, 100)
				if i > 0 {
					So(stats.TopGenres[i-1].Count, ShouldBeGreaterThanOrEqualTo, g.Count)
				}
			}
			So(sum, ShouldBeLessThanOrEqualTo, stats.TotalLikes)
			So(len(stats.TopGenres), ShouldBeLessThanOrEqualTo, 5)

			So(a.Analyze(events), ShouldResemble, stats)
		}
	})

	Convey("Given liked events tagged with several categories", t, func() {
		a := swipe.NewAnalyzer(swipe.WithClock(fixedClock))
		stats := a.Analyze([]model.SwipeEvent{
			like("both", time.Hour, 28, 35),
			like("action", 2*time.Hour, 28),
		})

		Convey("Then each category counts the event once", func() {
			So(stats.TotalLikes, ShouldEqual, 2)
			So(stats.TopGenres, ShouldResemble, []model.GenreCount{
				{Genre: taxonomy.Action, Count: 2, Percentage: 100},
				{Genre: taxonomy.Comedy, Count: 1, Percentage: 50},
			})
		})

		Convey("Then category counts may sum past the like total", func() {
			sum := 0
			for _, g := range stats.TopGenres {
				sum += g.Count
				So(g.Count, ShouldBeLessThanOrEqualTo, stats.TotalLikes)
			}
			So(sum, ShouldEqual, 3)
		})
	})

	Convey("Given random multi-genre histories", t, func() {
		a := swipe.NewAnalyzer(swipe.WithClock(fixedClock))
		rng := rand.New(rand.NewSource(11))
		pool := []int{28, 12, 35, 18, 27, 53, 80, 878, 16, 10751, 99, 10749, 10759, 10765}

		for round := 0; round < 30; round++ {
			n := rng.Intn(30)
			events := make([]model.SwipeEvent, 0, n)
			for i := 0; i < n; i++ {
				genres := make([]int, 1+rng.Intn(4))
				for j := range genres {
					genres[j] = pool[rng.Intn(len(pool))]
				}
				events = append(events, like(fmt.Sprintf("m%d", i), time.Duration(i)*time.Hour, genres...))
			}
			stats := a.Analyze(events)

			So(len(stats.TopGenres), ShouldBeLessThanOrEqualTo, 5)
			for i, g := range stats.TopGenres {
				So(g.Count, ShouldBeLessThanOrEqualTo, stats.TotalLikes)
				So(g.Percentage, ShouldBeBetweenOrEqual, 0, 100)
				if i > 0 {
					So(stats.TopGenres[i-1].Count, ShouldBeGreaterThanOrEqualTo, g.Count)
				}
			}
		}
	})
}

func TestAppend(t *testing.T) {
	Convey("Given an existing history", t, func() {
		base := make([]model.SwipeEvent, 1, 4)
		base[0] = like("m1", time.Hour, 28)

		Convey("When new events are appended", func() {
			out := swipe.Append(base, like("m2", 0, 35))

			Convey("Then a new sequence is returned and the original is untouched", func() {
				So(out, ShouldHaveLength, 2)
				So(base, ShouldHaveLength, 1)
				out[0].ContentID = "changed"
				So(base[0].ContentID, ShouldEqual, "m1")
			})
		})
	})
}

func TestCategoryScores(t *testing.T) {
	Convey("Given swipe statistics", t, func() {
		a := swipe.NewAnalyzer(swipe.WithClock(fixedClock))

		Convey("When there are no swipes", func() {
			Convey("Then nothing is derived", func() {
				So(swipe.CategoryScores(a.Analyze(nil)), ShouldBeEmpty)
			})
		})

		Convey("When there are liked events", func() {
			stats := a.Analyze([]model.SwipeEvent{
				like("s1", time.Hour, 10765),
				like("m1", time.Hour, 28),
				like("m2", time.Hour, 28),
				like("m3", time.Hour, 35),
			})
			scores := swipe.CategoryScores(stats)

			Convey("Then every derived score is in range", func() {
				for _, v := range scores {
					So(v, ShouldBeBetweenOrEqual, 0, 100)
				}
				So(scores[model.CategoryBingeTendency], ShouldEqual, 25)
				So(scores[model.CategoryDiscovery], ShouldEqual, 50)
				So(scores[model.CategoryGenreDiversity], ShouldEqual, 60)
				So(scores[model.CategoryEngagement], ShouldEqual, 4)
			})
		})

		Convey("When merging with quiz scores", func() {
			quiz := model.CategoryScores{model.CategoryEngagement: 90}
			derived := model.CategoryScores{model.CategoryEngagement: 10, model.CategoryDiscovery: 40}
			merged := swipe.MergeScores(quiz, derived)

			Convey("Then quiz values win and inputs are untouched", func() {
				So(merged[model.CategoryEngagement], ShouldEqual, 90)
				So(merged[model.CategoryDiscovery], ShouldEqual, 40)
				So(derived[model.CategoryEngagement], ShouldEqual, 10)
			})
		})
	})
}
