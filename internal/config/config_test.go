package config_test

import (
	"errors"
	"testing"

	"github.com/okian/pinpoint/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.StoreBackend, convey.ShouldEqual, "file")
			convey.So(cfg.StorePath, convey.ShouldEqual, "db.json")
			convey.So(cfg.LeaderboardLimit, convey.ShouldEqual, 10)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = " " },
			"zero limit":        func(c *config.Config) { c.LeaderboardLimit = 0 },
			"unknown backend":   func(c *config.Config) { c.StoreBackend = "redis" },
			"file without path": func(c *config.Config) { c.StorePath = "" },
			"unknown format":    func(c *config.Config) { c.LogFormat = "xml" },
		}
		for _, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}

		convey.Convey("Memory backend needs no path", func() {
			cfg := config.New()
			cfg.StoreBackend = "memory"
			cfg.StorePath = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
