package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/pinpoint/internal/config"
	"github.com/okian/pinpoint/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func memoryConfig() *config.Config {
	cfg := config.New()
	cfg.StoreBackend = "memory"
	cfg.StorePath = ""
	return cfg
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a memory store configuration", t, func() {
		ctx := context.Background()
		cfg := memoryConfig()

		convey.Convey("Then the service starts with the default character", func() {
			svc, err := newService(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			chars, err := svc.Characters(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(chars), convey.ShouldEqual, 1)
			convey.So(chars[0].ID, convey.ShouldEqual, "waldo")
		})

		convey.Convey("When a seed file is configured", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "seed.yaml")
			seed := "characters:\n  - id: odlaw\n    cx: 0.2\n    cy: 0.3\n    radius: 0.05\n"
			convey.So(os.WriteFile(path, []byte(seed), 0o600), convey.ShouldBeNil)
			cfg.SeedFile = path

			convey.Convey("Then its characters are seeded", func() {
				svc, err := newService(ctx, cfg, logger.Nop())
				convey.So(err, convey.ShouldBeNil)
				defer svc.Stop()

				chars, err := svc.Characters(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(chars), convey.ShouldEqual, 1)
				convey.So(chars[0].ID, convey.ShouldEqual, "odlaw")
			})
		})

		convey.Convey("When the seed file is missing", func() {
			cfg.SeedFile = filepath.Join(t.TempDir(), "nope.yaml")

			convey.Convey("Then startup fails", func() {
				_, err := newService(ctx, cfg, logger.Nop())
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the backend is unknown", func() {
			cfg.StoreBackend = "redis"

			convey.Convey("Then startup fails", func() {
				_, err := newService(ctx, cfg, logger.Nop())
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})

	convey.Convey("Given a file store configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.StorePath = filepath.Join(t.TempDir(), "db.json")

		convey.Convey("Then state survives a restart", func() {
			svc, err := newService(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			_, err = svc.SubmitScore(ctx, "Ana", 1200)
			convey.So(err, convey.ShouldBeNil)
			svc.Stop()

			svc, err = newService(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			scores, err := svc.Leaderboard(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(scores), convey.ShouldEqual, 1)
			convey.So(scores[0].Name, convey.ShouldEqual, "Ana")
		})
	})
}

func TestRouter(t *testing.T) {
	convey.Convey("Given the assembled router", t, func() {
		ctx := context.Background()
		svc, err := newService(ctx, memoryConfig(), logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		h := newRouter(ctx, svc, logger.Nop())
		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then every surface is mounted", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/app.js").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/characters").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/scores").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And the API accepts a click", func() {
			body := `{"x":620,"y":410,"imageWidth":1000,"imageHeight":1000,"characterId":"waldo"}`
			req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"correct":true`)
		})
	})
}

func TestServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		svc, err := newService(ctx, memoryConfig(), logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("Then the updater returns once the context ends", func() {
			convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
		})
	})
}
