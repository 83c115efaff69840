package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	service "github.com/Katlyn627/Netflix-And-Chill-sub001/internal/app"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/matching"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func swipes(genre int, n int) []model.SwipeEvent {
	out := make([]model.SwipeEvent, n)
	for i := range out {
		out[i] = model.SwipeEvent{
			ContentID: fmt.Sprintf("c%d-%d", genre, i),
			GenreIDs:  []int{genre},
			Action:    model.ActionLike,
			SwipedAt:  now.Add(-time.Duration(i) * 24 * time.Hour),
		}
	}
	return out
}

func users(n int) []model.User {
	out := make([]model.User, n)
	for i := range out {
		out[i] = model.User{
			ID:                fmt.Sprintf("user-%03d", i),
			Age:               22 + i%20,
			Gender:            []string{"female", "male", "nonbinary"}[i%3],
			Swipes:            swipes([]int{28, 35, 18, 27}[i%4], 3+i%5),
			StreamingServices: []string{"netflix"},
			BingeCount:        i % 9,
			Mood:              []string{"happy", "dark", "curious"}[i%3],
		}
	}
	return out
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithClock(func() time.Time { return now }),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When analyzing the worked example", func() {
			events := append(swipes(28, 4), swipes(35, 1)...)
			stats, err := svc.AnalyzeSwipes(ctx, events)

			Convey("Then Action leads with 80 percent", func() {
				So(err, ShouldBeNil)
				So(stats.TopGenres[0].Genre, ShouldEqual, "Action")
				So(stats.TopGenres[0].Count, ShouldEqual, 4)
				So(stats.TopGenres[0].Percentage, ShouldEqual, 80)
			})
		})

		Convey("When scoring a pair", func() {
			pop := users(2)
			res, err := svc.Compatibility(ctx, pop[0], pop[1])

			Convey("Then the result is bounded and explained", func() {
				So(err, ShouldBeNil)
				So(res.OverallScore, ShouldBeBetweenOrEqual, 0, 100)
				So(res.Description, ShouldNotBeBlank)
			})
		})

		Convey("When finding matches with declared preferences", func() {
			requester := model.User{
				ID:          "me",
				Age:         30,
				Swipes:      swipes(28, 5),
				Preferences: model.Preferences{MinAge: 25, MaxAge: 35, GenderPreference: []string{"female"}},
			}
			ev, err := svc.FindMatches(ctx, matching.Request{Requester: requester, Population: users(60)})

			Convey("Then preferences act as filters and the default limit applies", func() {
				So(err, ShouldBeNil)
				So(len(ev.Matches), ShouldBeLessThanOrEqualTo, matching.DefaultLimit)
				So(len(ev.Matches), ShouldBeGreaterThan, 0)
				So(ev.Stats.Filtered[matching.ReasonAge], ShouldBeGreaterThan, 0)
				So(ev.Stats.Filtered[matching.ReasonGender], ShouldBeGreaterThan, 0)
			})

			Convey("Then explicit filters override preferences", func() {
				wide, err := svc.FindMatches(ctx, matching.Request{
					Requester:  requester,
					Population: users(60),
					Filters:    matching.Filters{MinAge: 18, MaxAge: 99},
					Limit:      60,
				})
				So(err, ShouldBeNil)
				So(wide.Stats.Filtered[matching.ReasonAge], ShouldEqual, 0)
			})

			Convey("Then a lone query bound replaces the declared age range", func() {
				older, err := svc.FindMatches(ctx, matching.Request{
					Requester:  requester,
					Population: users(60),
					Filters:    matching.Filters{MinAge: 40},
					Limit:      60,
				})
				So(err, ShouldBeNil)
				So(older.Matches, ShouldNotBeEmpty)
				ages := map[string]int{}
				for _, u := range users(60) {
					ages[u.ID] = u.Age
				}
				for _, m := range older.Matches {
					So(ages[m.MatchedUserID], ShouldBeGreaterThanOrEqualTo, 40)
				}
			})
		})

		Convey("When a limit above the maximum is requested", func() {
			_, err := svc.FindMatches(ctx, matching.Request{Requester: model.User{ID: "me"}, Limit: 1000})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, matching.ErrInvalidLimit), ShouldBeTrue)
			})
		})

		Convey("When many selections run concurrently", func() {
			pop := users(80)
			req := matching.Request{Requester: model.User{ID: "me", Swipes: swipes(35, 4)}, Population: pop, Limit: 20}
			want, err := svc.FindMatches(ctx, req)
			So(err, ShouldBeNil)

			var wg sync.WaitGroup
			results := make([]matching.Evaluation, 8)
			errs := make([]error, 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = svc.FindMatches(ctx, req)
				}(i)
			}
			wg.Wait()

			Convey("Then every run returns the same ranking", func() {
				for i := range results {
					So(errs[i], ShouldBeNil)
					So(results[i].Matches, ShouldResemble, want.Matches)
				}
				So(svc.GetStats()["selections"], ShouldBeGreaterThanOrEqualTo, int64(9))
			})
		})
	})
}
