package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/config"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.WorkerCount = 2
		cfg.DefaultMatchLimit = 5

		convey.Convey("When the archetype table is the built-in one", func() {
			svc, err := newService(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the service is started with the configured limits", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldEqual, true)
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
				convey.So(stats["defaultLimit"], convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the archetype file does not exist", func() {
			cfg.ArchetypesFile = filepath.Join(t.TempDir(), "missing.yaml")
			svc, err := newService(ctx, cfg)

			convey.Convey("Then startup fails with a load error", func() {
				convey.So(svc, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		cfg.RequestTimeoutMS = 1000
		svc, err := newService(context.Background(), cfg)
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		srv := newHTTPServer(cfg, svc)

		convey.Convey("Then the server is configured from the config", func() {
			convey.So(srv.Addr, convey.ShouldEqual, cfg.Addr)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})

		convey.Convey("Then its handler serves the health and stats routes", func() {
			for _, path := range []string{"/healthz", "/stats", "/metrics"} {
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given the server entry point", t, func() {
		convey.Convey("When the context is cancelled", func() {
			t.Setenv("NAC_ADDR", "127.0.0.1:0")
			t.Setenv("NAC_WORKER_COUNT", "2")
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			convey.Convey("Then it shuts down cleanly", func() {
				convey.So(run(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("NAC_MAX_MATCH_LIMIT", "5000")

			convey.Convey("Then it fails before listening", func() {
				err := run(context.Background())
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestStartServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		svc, err := newService(context.Background(), config.New())
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("Then the updater returns once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
		})
	})
}
