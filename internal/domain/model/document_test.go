package model_test

import (
	"testing"

	"github.com/google/uuid"
	model "github.com/okian/readability/internal/domain/model"
	"github.com/okian/readability/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewDocument(t *testing.T) {
	convey.Convey("Given raw text loaded from a path", t, func() {
		doc := model.NewDocument("/tmp/books/chapter-1.txt", "Cat sat.")

		convey.Convey("Then the name is the base name and the id is a uuid", func() {
			convey.So(doc.Name, convey.ShouldEqual, "chapter-1.txt")
			convey.So(doc.Text, convey.ShouldEqual, "Cat sat.")
			_, err := uuid.Parse(doc.ID)
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("And every document gets its own id", func() {
			other := model.NewDocument("/tmp/books/chapter-1.txt", "Cat sat.")
			convey.So(other.ID, convey.ShouldNotEqual, doc.ID)
		})
	})

	convey.Convey("Given text without a name", t, func() {
		doc := model.NewDocument("", "Dog ran.")
		convey.So(doc.Name, convey.ShouldBeEmpty)
	})
}

func TestReport_Score(t *testing.T) {
	convey.Convey("Given a report with two scores", t, func() {
		r := model.Report{Scores: []scoring.Result{
			{Kind: scoring.ARI, Score: 6.2, Age: 12},
			{Kind: scoring.CL, Score: 9.77, Age: 16},
		}}

		convey.Convey("When looking up a present kind", func() {
			res, ok := r.Score(scoring.CL)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(res.Age, convey.ShouldEqual, 16)
		})

		convey.Convey("When looking up a missing kind", func() {
			_, ok := r.Score(scoring.SMOG)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
