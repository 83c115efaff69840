package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/adapters/http/api"
	service "github.com/Katlyn627/Netflix-And-Chill-sub001/internal/app"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/loadgen"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	Convey("Given the generate command", t, func() {
		Convey("When writing to stdout", func() {
			out, err := execute("generate", "-n", "3", "--seed", "5")

			Convey("Then a YAML population is printed", func() {
				So(err, ShouldBeNil)
				pop, err := loadgen.ReadPopulation(bytes.NewBufferString(out))
				So(err, ShouldBeNil)
				So(pop.Seed, ShouldEqual, 5)
				So(pop.Users, ShouldHaveLength, 3)
			})
		})

		Convey("When writing to a file", func() {
			path := filepath.Join(t.TempDir(), "pop.yaml")
			_, err := execute("generate", "-n", "4", "-o", path)

			Convey("Then the file can be loaded", func() {
				So(err, ShouldBeNil)
				pop, err := loadgen.LoadPopulation(path)
				So(err, ShouldBeNil)
				So(pop.Users, ShouldHaveLength, 4)
			})
		})

		Convey("When the count is negative", func() {
			_, err := execute("generate", "--count=-2")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRunCommand(t *testing.T) {
	Convey("Given a running matching server", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		ts := httptest.NewServer(api.NewServer(svc, svc).Router())
		defer ts.Close()

		Convey("When a generated population is replayed", func() {
			out, err := execute("run", "--url", ts.URL, "-n", "30", "--requesters", "3", "--repeat", "2", "--workers", "2", "--limit", "4")

			Convey("Then the summary reports no mismatches", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "sent=6 ok=6 failed=0 invalid=0 mismatches=0")
			})
		})

		Convey("When the population file is missing", func() {
			_, err := execute("run", "--url", ts.URL, "-p", filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
