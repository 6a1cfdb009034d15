package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	service "github.com/okian/readability/internal/app"
	"github.com/okian/readability/internal/domain/model"
	"github.com/okian/readability/internal/domain/scoring"
	"github.com/okian/readability/internal/domain/textstats"
	"github.com/okian/readability/pkg/logger"
	"github.com/okian/readability/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// proseText scores inside the age table for all four formulas.
const proseText = "The children walked to the old library after school. " +
	"They wanted to find a good book about animals. " +
	"The librarian helped them choose a story about a clever fox."

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newService(opts ...service.Option) (*service.Service, *metrics.Manager) {
	m := metrics.NewManager()
	opts = append([]service.Option{
		service.WithMetrics(m),
		service.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return service.New(opts...), m
}

func counterValue(m *metrics.Manager, name string) float64 {
	families, err := m.Registry().Gather()
	if err != nil {
		return -1
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["workerCount"], ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(3),
			service.WithLogger(logger.Named("test")),
			service.WithWorkerCount(-1), // ignored
		)

		Convey("Then the options are applied", func() {
			So(svc.GetStats()["workerCount"], ShouldEqual, 3)
		})
	})
}

func TestService_Analyze(t *testing.T) {
	Convey("Given a service", t, func() {
		svc, m := newService()
		ctx := context.Background()

		Convey("When analyzing ordinary prose", func() {
			doc := model.NewDocument("minutes.txt", proseText)
			report, err := svc.Analyze(ctx, doc)

			Convey("Then the report carries metrics, four scores and their average", func() {
				So(err, ShouldBeNil)
				So(report.DocumentID, ShouldEqual, doc.ID)
				So(report.Name, ShouldEqual, "minutes.txt")
				So(report.AnalyzedAt, ShouldEqual, fixedNow)

				want, _ := textstats.Compute(proseText)
				So(report.Metrics, ShouldResemble, want)

				So(len(report.Scores), ShouldEqual, 4)
				So(report.AverageAge, ShouldEqual, 13.0)

				ari, ok := report.Score(scoring.ARI)
				So(ok, ShouldBeTrue)
				So(ari.Score, ShouldAlmostEqual, 4.84, 0.001)
				So(ari.Age, ShouldEqual, 11)
			})

			Convey("And metrics and stats record the success", func() {
				So(counterValue(m, "readability_analyzer_documents_analyzed_total"), ShouldEqual, 1)
				stats := svc.GetStats()
				So(stats["documentsAnalyzed"], ShouldEqual, int64(1))
				So(stats["documentsFailed"], ShouldEqual, int64(0))
			})
		})

		Convey("When analyzing text with no words", func() {
			_, err := svc.Analyze(ctx, model.NewDocument("blank.txt", " \n\t "))

			Convey("Then it fails with a degenerate input error", func() {
				So(errors.Is(err, textstats.ErrDegenerateInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "blank.txt")
				So(service.ErrorKind(err), ShouldEqual, metrics.ErrorKindDegenerateInput)
				So(counterValue(m, "readability_analyzer_analysis_errors_total"), ShouldEqual, 1)

				stats := svc.GetStats()
				So(stats["documentsFailed"], ShouldEqual, int64(1))
				So(stats["failuresByKind"], ShouldResemble, map[string]int64{metrics.ErrorKindDegenerateInput: 1})
			})
		})

		Convey("When analyzing text too simple for the age table", func() {
			_, err := svc.Analyze(ctx, model.NewDocument("", "Cat sat. Dog ran."))

			Convey("Then it fails with an out of range error", func() {
				So(errors.Is(err, scoring.ErrOutOfRangeScore), ShouldBeTrue)
				So(service.ErrorKind(err), ShouldEqual, metrics.ErrorKindOutOfRangeScore)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Analyze(cctx, model.NewDocument("x", proseText))

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given an unrelated error", t, func() {
		So(service.ErrorKind(errors.New("boom")), ShouldEqual, metrics.ErrorKindInternal)
	})
}

func TestService_AnalyzeAll(t *testing.T) {
	Convey("Given a service with two workers", t, func() {
		svc, _ := newService(service.WithWorkerCount(2))
		ctx := context.Background()

		docs := make([]model.Document, 0, 9)
		for i := 0; i < 8; i++ {
			docs = append(docs, model.NewDocument(fmt.Sprintf("doc-%d.txt", i), strings.Repeat(proseText+" ", i+1)))
		}
		docs = append(docs, model.NewDocument("empty.txt", ""))

		Convey("When analyzing the batch", func() {
			outcomes, err := svc.AnalyzeAll(ctx, docs)

			Convey("Then outcomes keep input order", func() {
				So(err, ShouldBeNil)
				So(len(outcomes), ShouldEqual, len(docs))
				for i, o := range outcomes {
					So(o.Document.ID, ShouldEqual, docs[i].ID)
				}
			})

			Convey("And one bad document does not stop the others", func() {
				for _, o := range outcomes[:8] {
					So(o.Err, ShouldBeNil)
					So(o.Report.DocumentID, ShouldEqual, o.Document.ID)

					m, _ := textstats.Compute(o.Document.Text)
					want, _ := scoring.ComputeAll(m)
					So(cmp.Diff(m, o.Report.Metrics), ShouldBeEmpty)
					So(cmp.Diff(want, o.Report.Scores), ShouldBeEmpty)
				}
				So(errors.Is(outcomes[8].Err, textstats.ErrDegenerateInput), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			outcomes, err := svc.AnalyzeAll(cctx, docs)

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(outcomes, ShouldBeNil)
		})

		Convey("When the batch is empty", func() {
			outcomes, err := svc.AnalyzeAll(ctx, nil)
			So(err, ShouldBeNil)
			So(outcomes, ShouldBeEmpty)
		})
	})
}
