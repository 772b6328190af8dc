package window_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

func day(m time.Month, d int) model.Date {
	return model.NewDate(2025, m, d)
}

func TestContains(t *testing.T) {
	Convey("Given now is Wednesday 2025-11-19 mid-afternoon", t, func() {
		now := time.Date(2025, time.November, 19, 15, 4, 5, 0, time.UTC)

		Convey("When the window is ALL_TIME", func() {
			w := window.Window{Range: window.AllTime}

			Convey("Then dated and undated records should pass", func() {
				So(w.Contains(day(time.January, 1), now), ShouldBeTrue)
				So(w.Contains(model.Date{}, now), ShouldBeTrue)
			})
		})

		Convey("When the window is anything else", func() {
			Convey("Then undated records should be excluded", func() {
				for _, r := range window.Ranges[1:] {
					So(window.Window{Range: r}.Contains(model.Date{}, now), ShouldBeFalse)
				}
			})
		})

		Convey("When the window is TODAY or YESTERDAY", func() {
			today := window.Window{Range: window.Today}
			yest := window.Window{Range: window.Yesterday}

			Convey("Then only the exact calendar day should pass", func() {
				So(today.Contains(day(time.November, 19), now), ShouldBeTrue)
				So(today.Contains(day(time.November, 18), now), ShouldBeFalse)
				So(today.Contains(day(time.November, 20), now), ShouldBeFalse)
				So(yest.Contains(day(time.November, 18), now), ShouldBeTrue)
				So(yest.Contains(day(time.November, 19), now), ShouldBeFalse)
			})
		})

		Convey("When the window is THIS_WEEK", func() {
			w := window.Window{Range: window.ThisWeek}

			Convey("Then the week should start on Sunday 2025-11-16", func() {
				So(w.Contains(day(time.November, 15), now), ShouldBeFalse)
				So(w.Contains(day(time.November, 16), now), ShouldBeTrue)
				So(w.Contains(day(time.November, 19), now), ShouldBeTrue)
			})

			Convey("And later days of the week should not be capped", func() {
				So(w.Contains(day(time.November, 22), now), ShouldBeTrue)
			})

			Convey("And on a Sunday the week should be just that day onward", func() {
				sunday := time.Date(2025, time.November, 16, 0, 0, 0, 0, time.UTC)
				So(w.Contains(day(time.November, 16), sunday), ShouldBeTrue)
				So(w.Contains(day(time.November, 15), sunday), ShouldBeFalse)
			})
		})

		Convey("When the window is THIS_MONTH", func() {
			w := window.Window{Range: window.ThisMonth}

			Convey("Then month and year should both match", func() {
				So(w.Contains(day(time.November, 1), now), ShouldBeTrue)
				So(w.Contains(day(time.November, 30), now), ShouldBeTrue)
				So(w.Contains(day(time.October, 31), now), ShouldBeFalse)
				So(w.Contains(model.NewDate(2024, time.November, 19), now), ShouldBeFalse)
			})
		})

		Convey("When the window is LAST_30_DAYS", func() {
			w := window.Window{Range: window.Last30Days}

			Convey("Then the lower bound should be inclusive and the upper open", func() {
				So(w.Contains(day(time.October, 20), now), ShouldBeTrue)
				So(w.Contains(day(time.October, 19), now), ShouldBeFalse)
				So(w.Contains(day(time.December, 25), now), ShouldBeTrue)
			})
		})

		Convey("When the window is CUSTOM", func() {
			w := window.Window{Range: window.Custom, Start: day(time.November, 10), End: day(time.November, 12)}

			Convey("Then both bounds should be inclusive", func() {
				So(w.Contains(day(time.November, 9), now), ShouldBeFalse)
				So(w.Contains(day(time.November, 10), now), ShouldBeTrue)
				So(w.Contains(day(time.November, 12), now), ShouldBeTrue)
				So(w.Contains(day(time.November, 13), now), ShouldBeFalse)
			})

			Convey("And a missing bound should let every dated record through", func() {
				open := window.Window{Range: window.Custom, Start: day(time.November, 10)}
				So(open.Contains(day(time.January, 1), now), ShouldBeTrue)
				So(open.Contains(model.Date{}, now), ShouldBeFalse)
			})
		})

		Convey("When now carries a zone", func() {
			loc := time.FixedZone("UTC+13", 13*60*60)
			local := time.Date(2025, time.November, 20, 1, 0, 0, 0, loc)
			w := window.Window{Range: window.Today}

			Convey("Then today should be the calendar day in that zone", func() {
				So(w.Contains(day(time.November, 20), local), ShouldBeTrue)
				So(w.Contains(day(time.November, 19), local), ShouldBeFalse)
			})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given records with and without dates", t, func() {
		now := time.Date(2025, time.November, 19, 9, 0, 0, 0, time.UTC)
		recs := []model.NormalizedRecord{
			{ID: "a", Date: day(time.November, 19)},
			{ID: "b"},
			{ID: "c", Date: day(time.November, 1)},
			{ID: "d", Date: day(time.November, 18)},
		}

		Convey("When filtering to this week", func() {
			got := window.Window{Range: window.ThisWeek}.Filter(recs, now)

			Convey("Then matching records should keep their order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].ID, ShouldEqual, "a")
				So(got[1].ID, ShouldEqual, "d")
			})
		})
	})
}

func TestParseRange(t *testing.T) {
	Convey("Given range names", t, func() {
		Convey("When parsing constants and labels", func() {
			r1, err1 := window.ParseRange("THIS_WEEK")
			r2, err2 := window.ParseRange("last 30 days")
			r3, err3 := window.ParseRange("")

			Convey("Then both spellings should resolve", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(err3, ShouldBeNil)
				So(r1, ShouldEqual, window.ThisWeek)
				So(r2, ShouldEqual, window.Last30Days)
				So(r3, ShouldEqual, window.AllTime)
				So(window.Custom.Label(), ShouldEqual, "Custom Range")
			})
		})

		Convey("When parsing garbage", func() {
			_, err := window.ParseRange("fortnight")

			Convey("Then it should return ErrUnknownRange", func() {
				So(errors.Is(err, window.ErrUnknownRange), ShouldBeTrue)
			})
		})
	})
}
