package round_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/pinpoint/internal/domain/round"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestFormatElapsed(t *testing.T) {
	Convey("Given elapsed durations", t, func() {
		So(round.FormatElapsed(0), ShouldEqual, "00:00")
		So(round.FormatElapsed(999*time.Millisecond), ShouldEqual, "00:00")
		So(round.FormatElapsed(61*time.Second), ShouldEqual, "01:01")
		So(round.FormatElapsed(10*time.Minute+5*time.Second), ShouldEqual, "10:05")
		So(round.FormatElapsed(2*time.Hour), ShouldEqual, "120:00")
		So(round.FormatElapsed(-time.Second), ShouldEqual, "00:00")
	})
}

func TestRound(t *testing.T) {
	Convey("Given a round with a controllable clock", t, func() {
		clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		r := round.New(round.WithClock(clock.Now))

		Convey("It starts inactive at 00:00", func() {
			So(r.Active(), ShouldBeFalse)
			So(r.Display(), ShouldEqual, "00:00")
		})

		Convey("When started and time passes", func() {
			r.Start()
			clock.Advance(75 * time.Second)

			So(r.Active(), ShouldBeTrue)
			So(r.Display(), ShouldEqual, "01:15")

			Convey("Stop freezes the result", func() {
				final := r.Stop()
				clock.Advance(time.Minute)
				So(final, ShouldEqual, 75*time.Second)
				So(r.Active(), ShouldBeFalse)
				So(r.Display(), ShouldEqual, "01:15")
				So(r.Stop(), ShouldEqual, 75*time.Second)
			})

			Convey("Reset clears the display", func() {
				r.Reset()
				So(r.Active(), ShouldBeFalse)
				So(r.Display(), ShouldEqual, "00:00")
			})

			Convey("Start again restarts from zero", func() {
				r.Start()
				So(r.Elapsed(), ShouldEqual, 0)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given an inactive round", t, func() {
		r := round.New()

		Convey("Run returns immediately", func() {
			finished := make(chan struct{})
			go func() {
				round.Run(context.Background(), r, time.Millisecond, func(string) {})
				close(finished)
			}()
			select {
			case <-finished:
			case <-time.After(time.Second):
				t.Fatal("Run did not return")
			}
		})
	})

	Convey("Given an active round", t, func() {
		r := round.New()
		r.Start()

		Convey("Run ticks until the round stops", func() {
			ticks := make(chan string, 64)
			finished := make(chan struct{})
			go func() {
				round.Run(context.Background(), r, time.Millisecond, func(s string) {
					select {
					case ticks <- s:
					default:
					}
				})
				close(finished)
			}()

			So(<-ticks, ShouldEqual, "00:00")
			r.Stop()

			select {
			case <-finished:
			case <-time.After(time.Second):
				t.Fatal("Run did not stop with the round")
			}
		})

		Convey("Run stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			finished := make(chan struct{})
			go func() {
				round.Run(ctx, r, time.Hour, func(string) {})
				close(finished)
			}()
			cancel()

			select {
			case <-finished:
			case <-time.After(time.Second):
				t.Fatal("Run ignored cancellation")
			}
			So(r.Active(), ShouldBeTrue)
		})
	})
}
