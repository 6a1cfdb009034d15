package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it registers on a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotEqual, GetRegistry())
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordDocumentAnalyzed(120, 14.5, 0.3)

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_documents_analyzed_total"], ShouldBeTrue)
				So(names["test_unit_analysis_duration_milliseconds"], ShouldBeTrue)

				So(testutil.ToFloat64(manager.documentsAnalyzed), ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager()

		Convey("When analyses succeed", func() {
			m.RecordDocumentAnalyzed(4, 12, 0.1)
			m.RecordDocumentAnalyzed(400, 16.25, 0.4)
			m.RecordScore("ARI", 6.2)

			Convey("Then counters and histograms observe them", func() {
				So(testutil.ToFloat64(m.documentsAnalyzed), ShouldEqual, 2)
				So(testutil.CollectAndCount(m.averageAge), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.scoreValue), ShouldEqual, 1)
			})
		})

		Convey("When analyses fail", func() {
			So(m.RecordAnalysisError(ErrorKindDegenerateInput), ShouldBeNil)
			So(m.RecordAnalysisError(ErrorKindDegenerateInput), ShouldBeNil)
			So(m.RecordAnalysisError(ErrorKindOutOfRangeScore), ShouldBeNil)

			Convey("Then errors are counted per kind", func() {
				So(testutil.ToFloat64(m.analysisErrors.WithLabelValues(ErrorKindDegenerateInput)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.analysisErrors.WithLabelValues(ErrorKindOutOfRangeScore)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.analysisErrors.WithLabelValues(ErrorKindInternal)), ShouldEqual, 0)
			})

			Convey("And unknown kinds are rejected", func() {
				err := m.RecordAnalysisError("exploded")
				So(errors.Is(err, ErrUnknownErrorKind), ShouldBeTrue)
			})
		})

		Convey("When tracking in-flight analyses", func() {
			done := m.AnalysisStarted()
			So(testutil.ToFloat64(m.analysesInFlight), ShouldEqual, 1)
			done()
			So(testutil.ToFloat64(m.analysesInFlight), ShouldEqual, 0)
		})

		Convey("When recording HTTP requests", func() {
			m.RecordHTTPRequest("analyze", "POST", "200", 1.2)
			m.RecordHTTPRequest("analyze", "POST", "422", 0.8)

			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("analyze", "POST", "200")), ShouldEqual, 1)
			So(testutil.CollectAndCount(m.httpRequests), ShouldEqual, 2)
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false))
		m.RecordDocumentAnalyzed(10, 12, 1)
		m.RecordHTTPRequest("analyze", "POST", "200", 1)
		m.AnalysisStarted()()

		Convey("Then nothing is recorded", func() {
			So(m.Enabled(), ShouldBeFalse)
			So(testutil.ToFloat64(m.documentsAnalyzed), ShouldEqual, 0)
			So(testutil.CollectAndCount(m.httpRequests), ShouldEqual, 0)
			So(m.RecordAnalysisError(ErrorKindInternal), ShouldBeNil)
			So(testutil.ToFloat64(m.analysisErrors.WithLabelValues(ErrorKindInternal)), ShouldEqual, 0)
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the process-wide manager", t, func() {
		So(Default(), ShouldNotBeNil)
		So(Default().Registry(), ShouldEqual, GetRegistry())

		Convey("When recording on the default manager", func() {
			So(Default().Enabled(), ShouldBeTrue)
			So(func() {
				Default().RecordDocumentAnalyzed(10, 12, 0.5)
				Default().RecordScore("FK", 8.73)
				Default().RecordHTTPRequest("healthz", "GET", "200", 0.1)
			}, ShouldNotPanic)
			So(Default().RecordAnalysisError(ErrorKindInternal), ShouldBeNil)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
