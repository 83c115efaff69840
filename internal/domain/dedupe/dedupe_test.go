package dedupe_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTracker(t *testing.T) {
	Convey("Given a new tracker", t, func() {
		tr := dedupe.NewTracker(dedupe.WithCapacity(8))

		Convey("When an id is admitted twice", func() {
			first := tr.SeenAndRecord("u1")
			second := tr.SeenAndRecord("u1")

			Convey("Then only the first admission is new", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
			})

			Convey("Then other ids are unaffected", func() {
				So(tr.SeenAndRecord("u2"), ShouldBeFalse)
			})
		})
	})
}

func TestTrackerConcurrency(t *testing.T) {
	Convey("Given goroutines racing on overlapping ids", t, func() {
		tr := dedupe.NewTracker()
		var fresh atomic.Int64
		var wg sync.WaitGroup

		for g := 0; g < 10; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !tr.SeenAndRecord(fmt.Sprintf("u%d", i)) {
						fresh.Add(1)
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each id is admitted exactly once", func() {
			So(fresh.Load(), ShouldEqual, 100)
		})
	})
}
