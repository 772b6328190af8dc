package scoring_test

import (
	"math"
	"testing"

	"github.com/okian/setterboard/internal/domain/dedupe"
	"github.com/okian/setterboard/internal/domain/model"
	scoring "github.com/okian/setterboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func cluster(key string, m model.Metrics) dedupe.Cluster {
	return dedupe.Cluster{Key: key, DisplayName: key, Records: 1, Metrics: m}
}

func TestRate(t *testing.T) {
	Convey("Given numerators and denominators", t, func() {
		Convey("When the denominator is zero", func() {
			Convey("Then the rate should be zero, not NaN", func() {
				So(scoring.Rate(0, 0), ShouldEqual, 0)
				So(scoring.Rate(5, 0), ShouldEqual, 0)
				So(math.IsNaN(scoring.Rate(0, 0)), ShouldBeFalse)
			})
		})

		Convey("When the rate has many decimals", func() {
			Convey("Then it should be rounded to one decimal", func() {
				So(scoring.Rate(2, 3), ShouldEqual, 66.7)
				So(scoring.Rate(1, 3), ShouldEqual, 33.3)
				So(scoring.Rate(3, 4), ShouldEqual, 75)
				So(scoring.Rate(7, 7), ShouldEqual, 100)
			})
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given clusters with differing cash collected", t, func() {
		clusters := []dedupe.Cluster{
			cluster("low", model.Metrics{CashCollected: 100, Sets: 4, SetsShowed: 3, SetCloses: 1}),
			cluster("high", model.Metrics{CashCollected: 900, Sets: 3, SetsShowed: 2, SetCloses: 2}),
			cluster("tie-a", model.Metrics{CashCollected: 500}),
			cluster("tie-b", model.Metrics{CashCollected: 500}),
			cluster("zero", model.Metrics{}),
		}

		Convey("When ranking", func() {
			ranked := scoring.Rank(clusters)

			Convey("Then the list should be sorted by cash descending with stable ties", func() {
				So(ranked, ShouldHaveLength, 5)
				got := make([]string, len(ranked))
				for i, r := range ranked {
					got[i] = r.Key
				}
				So(got, ShouldResemble, []string{"high", "tie-a", "tie-b", "low", "zero"})
			})

			Convey("And rates should be derived per cluster", func() {
				So(ranked[0].ShowRate, ShouldEqual, 66.7)
				So(ranked[0].CloseRate, ShouldEqual, 66.7)
				So(ranked[3].ShowRate, ShouldEqual, 75)
				So(ranked[3].CloseRate, ShouldEqual, 25)
			})

			Convey("And clusters without sets should have zero rates", func() {
				for _, r := range ranked {
					if r.Sets == 0 {
						So(r.ShowRate, ShouldEqual, 0)
						So(r.CloseRate, ShouldEqual, 0)
					}
				}
			})

			Convey("And the input slice should be left untouched", func() {
				So(clusters[0].Key, ShouldEqual, "low")
			})
		})

		Convey("When ranking an empty set", func() {
			Convey("Then the result should be empty", func() {
				So(scoring.Rank(nil), ShouldBeEmpty)
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a ranked set", t, func() {
		ranked := scoring.Rank([]dedupe.Cluster{
			cluster("a", model.Metrics{Dials: 100, CashCollected: 1000, Sets: 2, SetsShowed: 1}),
			cluster("b", model.Metrics{Dials: 50, CashCollected: 250, Sets: 1, SetsShowed: 1}),
		})

		Convey("When summarizing", func() {
			tot := scoring.Summarize(ranked)

			Convey("Then totals and the average show rate should be computed", func() {
				So(tot.Dials, ShouldEqual, 150)
				So(tot.CashCollected, ShouldEqual, 1250)
				So(tot.Sets, ShouldEqual, 3)
				So(tot.SetsShowed, ShouldEqual, 2)
				So(tot.AverageShowRate, ShouldEqual, 66.7)
			})
		})

		Convey("When summarizing nothing", func() {
			tot := scoring.Summarize(nil)

			Convey("Then everything should be zero", func() {
				So(tot, ShouldResemble, scoring.Totals{})
			})
		})
	})
}
