package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/config"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/archetype"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_ADDR", ":8080")
			t.Setenv("NAC_WORKER_COUNT", "16")
			t.Setenv("NAC_LOG_FORMAT", "json")
			t.Setenv("NAC_BINGE_TOLERANCE", "12.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.BingeTolerance, convey.ShouldEqual, 12.5)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars(t)
			path := writeFile(t, "config.yaml", `
addr: ":9090"
worker_count: 24
default_match_limit: 20
max_match_limit: 50
`)
			t.Setenv("NAC_CONFIG", path)
			t.Setenv("NAC_WORKER_COUNT", "32")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)
				convey.So(cfg.DefaultMatchLimit, convey.ShouldEqual, 20)
				convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 50)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_CONFIG", writeFile(t, "bad.yaml", `invalid: yaml: content: [`))
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_CONFIG", "/non/existent/file.yaml")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_ADDR", "")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr is required")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the default limit exceeds the maximum", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_DEFAULT_MATCH_LIMIT", "200")
			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "default_match_limit")
			})
		})

		convey.Convey("When loading config with an unknown log format", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_LOG_FORMAT", "xml")
			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("NAC_WORKER_COUNT", "not_a_number")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestLoadArchetypeTable(t *testing.T) {
	convey.Convey("Given archetype table files", t, func() {
		ctx := context.Background()

		convey.Convey("When no path is configured", func() {
			tbl, err := config.LoadArchetypeTable(ctx, "")

			convey.Convey("Then the built-in table is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tbl, convey.ShouldResemble, archetype.DefaultTable())
			})
		})

		convey.Convey("When a valid table is configured", func() {
			path := writeFile(t, "archetypes.yaml", `
archetypes:
  night_owl:
    name: The Night Owl
    description: Starts a movie after midnight.
    weights:
      viewing_habits: 2.0
      engagement: 1.0
`)
			tbl, err := config.LoadArchetypeTable(ctx, path)

			convey.Convey("Then it is decoded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tbl.Keys(), convey.ShouldResemble, []string{"night_owl"})
				convey.So(tbl.Archetypes["night_owl"].Name, convey.ShouldEqual, "The Night Owl")
				convey.So(tbl.Archetypes["night_owl"].Weights["viewing_habits"], convey.ShouldEqual, 2.0)
			})
		})

		convey.Convey("When a weight is out of bounds", func() {
			path := writeFile(t, "archetypes.yaml", `
archetypes:
  heavy:
    name: Heavy
    weights:
      engagement: 3.0
`)
			_, err := config.LoadArchetypeTable(ctx, path)

			convey.Convey("Then ErrInvalidWeightTable is returned", func() {
				convey.So(errors.Is(err, archetype.ErrInvalidWeightTable), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file is missing", func() {
			_, err := config.LoadArchetypeTable(ctx, filepath.Join(t.TempDir(), "nope.yaml"))

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// clearConfigEnvVars unsets every variable Load reads for the rest of the test.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "NAC_") {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
}
