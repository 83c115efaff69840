package config_test

import (
	"runtime"
	"testing"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DefaultMatchLimit, convey.ShouldEqual, 10)
			convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 100)
			convey.So(cfg.BingeTolerance, convey.ShouldEqual, 10)
			convey.So(cfg.ArchetypesFile, convey.ShouldBeEmpty)
		})
	})
}
