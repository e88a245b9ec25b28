package hittest_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/pinpoint/internal/domain/hittest"
	"github.com/okian/pinpoint/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHit(t *testing.T) {
	Convey("Given waldo at the image center with radius 0.05", t, func() {
		waldo := model.Character{ID: "waldo", Cx: 0.5, Cy: 0.5, Radius: 0.05}
		click := func(x, y float64) hittest.Click {
			return hittest.Click{X: x, Y: y, ImageWidth: 1000, ImageHeight: 1000, CharacterID: "waldo"}
		}

		Convey("A click on the center is a hit", func() {
			So(hittest.Hit(click(500, 500), waldo), ShouldBeTrue)
		})

		Convey("A click 0.1 away is a miss", func() {
			So(hittest.Hit(click(600, 500), waldo), ShouldBeFalse)
		})

		Convey("A diagonal click inside the radius is a hit", func() {
			So(hittest.Hit(click(530, 530), waldo), ShouldBeTrue)
		})

		Convey("A diagonal click outside the radius is a miss", func() {
			So(hittest.Hit(click(540, 540), waldo), ShouldBeFalse)
		})
	})

	Convey("Given a radius that is exactly representable", t, func() {
		ch := model.Character{ID: "c", Cx: 0.5, Cy: 0.5, Radius: 0.25}

		Convey("Distance equal to the radius counts as a hit", func() {
			c := hittest.Click{X: 750, Y: 500, ImageWidth: 1000, ImageHeight: 1000, CharacterID: "c"}
			fx, fy := c.Normalized()
			So(hittest.Distance(fx, fy, ch), ShouldEqual, 0.25)
			So(hittest.Hit(c, ch), ShouldBeTrue)
		})

		Convey("Just beyond the radius is a miss", func() {
			c := hittest.Click{X: 751, Y: 500, ImageWidth: 1000, ImageHeight: 1000, CharacterID: "c"}
			So(hittest.Hit(c, ch), ShouldBeFalse)
		})
	})

	Convey("Hit-testing is independent of the displayed size", t, func() {
		ch := model.Character{ID: "c", Cx: 0.25, Cy: 0.75, Radius: 0.02}
		for _, size := range []float64{200, 640, 1920} {
			c := hittest.Click{X: 0.25 * size, Y: 0.75 * size * 0.5, ImageWidth: size, ImageHeight: size * 0.5, CharacterID: "c"}
			So(hittest.Hit(c, ch), ShouldBeTrue)
		}
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a character off-center", t, func() {
		ch := model.Character{ID: "odlaw", Cx: 0.3333, Cy: 0.6667, Radius: 0.05}

		Convey("The center is rounded to whole pixels", func() {
			p := hittest.Center(ch, 1000, 600)
			So(p.X, ShouldEqual, 333)
			So(p.Y, ShouldEqual, 400)
		})

		Convey("A miss still carries the center", func() {
			res := hittest.Evaluate(hittest.Click{X: 10, Y: 10, ImageWidth: 1000, ImageHeight: 600, CharacterID: "odlaw"}, ch)
			So(res.Correct, ShouldBeFalse)
			So(res.CharacterID, ShouldEqual, "odlaw")
			So(res.Center, ShouldNotBeNil)
			So(res.Center.X, ShouldEqual, 333)
		})
	})
}

func TestClickValidate(t *testing.T) {
	Convey("Given click inputs", t, func() {
		base := hittest.Click{X: 10, Y: 10, ImageWidth: 100, ImageHeight: 100, CharacterID: "waldo"}

		Convey("A complete click validates", func() {
			So(base.Validate(), ShouldBeNil)
		})

		// Zero coordinates are a real click on the image edge, not a missing value.
		Convey("Zero coordinates are accepted", func() {
			c := base
			c.X, c.Y = 0, 0
			So(c.Validate(), ShouldBeNil)
		})

		Convey("Bad inputs are rejected with ErrInvalidInput", func() {
			mutations := []func(*hittest.Click){
				func(c *hittest.Click) { c.CharacterID = "" },
				func(c *hittest.Click) { c.ImageWidth = 0 },
				func(c *hittest.Click) { c.ImageHeight = -5 },
				func(c *hittest.Click) { c.X = -1 },
				func(c *hittest.Click) { c.Y = math.NaN() },
				func(c *hittest.Click) { c.ImageWidth = math.Inf(1) },
			}
			for _, m := range mutations {
				c := base
				m(&c)
				err := c.Validate()
				So(err, ShouldNotBeNil)
				So(errors.Is(err, hittest.ErrInvalidInput), ShouldBeTrue)
			}
		})
	})
}
