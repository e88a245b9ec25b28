package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/pinpoint/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCharacterValidate(t *testing.T) {
	Convey("Given character definitions", t, func() {
		valid := model.Character{ID: "waldo", Cx: 0.5, Cy: 0.5, Radius: 0.05}

		Convey("A well-formed character validates", func() {
			So(valid.Validate(), ShouldBeNil)
		})

		Convey("Edge coordinates are accepted", func() {
			c := model.Character{ID: "edge", Cx: 0, Cy: 1, Radius: 1}
			So(c.Validate(), ShouldBeNil)
		})

		Convey("Malformed characters are rejected", func() {
			cases := []model.Character{
				{ID: " ", Cx: 0.5, Cy: 0.5, Radius: 0.1},
				{ID: "a", Cx: -0.1, Cy: 0.5, Radius: 0.1},
				{ID: "a", Cx: 0.5, Cy: 1.5, Radius: 0.1},
				{ID: "a", Cx: 0.5, Cy: 0.5, Radius: 0},
				{ID: "a", Cx: 0.5, Cy: 0.5, Radius: 1.2},
				{ID: "a", Cx: math.NaN(), Cy: 0.5, Radius: 0.1},
			}
			for _, c := range cases {
				err := c.Validate()
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrInvalidCharacter), ShouldBeTrue)
			}
		})
	})
}

func TestStateHelpers(t *testing.T) {
	Convey("Given a state document", t, func() {
		st := model.State{
			Characters: []model.Character{
				{ID: "waldo", Cx: 0.5, Cy: 0.5, Radius: 0.05, Found: true},
				{ID: "wenda", Cx: 0.2, Cy: 0.3, Radius: 0.05},
			},
			Scores: []model.Score{{ID: "1", Name: "A", TimeMs: 5000}},
		}

		Convey("Clone does not share backing arrays", func() {
			cp := st.Clone()
			cp.Characters[0].Found = false
			cp.Scores[0].Name = "changed"
			So(st.Characters[0].Found, ShouldBeTrue)
			So(st.Scores[0].Name, ShouldEqual, "A")
		})

		Convey("Character finds by id and allows in-place mutation", func() {
			c := st.Character("wenda")
			So(c, ShouldNotBeNil)
			c.Found = true
			So(st.Characters[1].Found, ShouldBeTrue)
			So(st.Character("odlaw"), ShouldBeNil)
		})

		Convey("FoundCount counts found characters", func() {
			So(st.FoundCount(), ShouldEqual, 1)
		})

		Convey("EmptyState has non-nil empty slices", func() {
			e := model.EmptyState()
			So(e.Characters, ShouldNotBeNil)
			So(e.Scores, ShouldNotBeNil)
			So(len(e.Characters), ShouldEqual, 0)
		})
	})
}
