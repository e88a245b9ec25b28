package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics are registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.RecordCheck(CheckHit), ShouldBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_checks_total"], ShouldBeTrue)
			})

			Convey("Then unknown check labels are rejected", func() {
				err := manager.RecordCheck("bogus")
				So(errors.Is(err, ErrUnknownCheckResult), ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording checks", func() {
			before := value(globalManager.checks.WithLabelValues(CheckMiss))
			So(RecordCheck(CheckMiss), ShouldBeNil)
			So(value(globalManager.checks.WithLabelValues(CheckMiss)), ShouldEqual, before+1)
		})

		Convey("When recording resets and scores", func() {
			resets := value(globalManager.resets)
			scores := value(globalManager.scoresSubmitted)
			RecordReset()
			RecordScoreSubmitted(4200)
			So(value(globalManager.resets), ShouldEqual, resets+1)
			So(value(globalManager.scoresSubmitted), ShouldEqual, scores+1)
		})

		Convey("When updating game state gauges", func() {
			UpdateGameState(3, 1, 7)
			So(value(globalManager.charactersTotal), ShouldEqual, 3)
			So(value(globalManager.charactersFound), ShouldEqual, 1)
			So(value(globalManager.scoresTotal), ShouldEqual, 7)
		})

		Convey("When a store operation fails", func() {
			errs := globalManager.storeErrors.WithLabelValues("save", "memory")
			before := value(errs)
			RecordStoreOperation("save", "memory", 1.5, errors.New("boom"))
			RecordStoreOperation("save", "memory", 0.5, nil)
			So(value(errs), ShouldEqual, before+1)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("check", "POST", "200")
				RecordHTTPRequestDuration("check", "POST", "200", 3)
				RecordErrorByEndpoint("check", "POST", "client_error")
			}, ShouldNotPanic)
		})

		Convey("The custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

// value reads the current value of a counter or gauge.
func value(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	if m.Counter != nil {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}
