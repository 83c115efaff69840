package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestAction(t *testing.T) {
	convey.Convey("Given swipe actions arriving as text", t, func() {
		convey.Convey("When the action is known", func() {
			a, err := model.ParseAction(" LIKE ")

			convey.Convey("Then it is normalized", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(a, convey.ShouldEqual, model.ActionLike)
			})
		})

		convey.Convey("When the action is unknown", func() {
			_, err := model.ParseAction("superlike")

			convey.Convey("Then ErrUnknownAction is returned", func() {
				convey.So(errors.Is(err, model.ErrUnknownAction), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When decoding a JSON event", func() {
			var ev model.SwipeEvent
			err := json.Unmarshal([]byte(`{"contentId":"m1","genreIds":[28],"action":"Dislike","swipedAt":"2026-01-02T03:04:05Z"}`), &ev)

			convey.Convey("Then the action goes through ParseAction", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ev.Action, convey.ShouldEqual, model.ActionDislike)
				convey.So(ev.Liked(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestEmptyStatistics(t *testing.T) {
	convey.Convey("Given the empty statistics value", t, func() {
		s := model.EmptyStatistics()

		convey.Convey("Then it serializes an empty topGenres list, not null", func() {
			b, err := json.Marshal(s)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldContainSubstring, `"topGenres":[]`)
			convey.So(s.HasLikes(), convey.ShouldBeFalse)
		})
	})
}

func TestLocation(t *testing.T) {
	convey.Convey("Given locations with varying detail", t, func() {
		lat, lng := 40.7, -74.0
		var missing *model.Location

		convey.So(missing.Known(), convey.ShouldBeFalse)
		convey.So((&model.Location{Region: "NYC"}).Known(), convey.ShouldBeTrue)
		convey.So((&model.Location{Region: "NYC"}).HasCoordinates(), convey.ShouldBeFalse)
		convey.So((&model.Location{Latitude: &lat, Longitude: &lng}).HasCoordinates(), convey.ShouldBeTrue)
	})
}

func TestClassificationHasArchetype(t *testing.T) {
	convey.Convey("Given a classification", t, func() {
		c := model.Classification{Archetypes: []model.ArchetypeResult{{Type: "film_buff"}}}

		convey.So(c.HasArchetype("film_buff"), convey.ShouldBeTrue)
		convey.So(c.HasArchetype("binge_watcher"), convey.ShouldBeFalse)
	})
}
