package entity

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDateDaysUntil(t *testing.T) {
	Convey("TestDateDaysUntil", t, func() {
		Convey("同一天为 0，反向为负", func() {
			a := NewDate(2024, time.March, 1)
			b := NewDate(2024, time.March, 5)
			So(a.DaysUntil(a), ShouldEqual, 0)
			So(a.DaysUntil(b), ShouldEqual, 4)
			So(b.DaysUntil(a), ShouldEqual, -4)
		})

		Convey("跨闰年", func() {
			So(NewDate(2024, time.February, 28).DaysUntil(NewDate(2024, time.March, 1)), ShouldEqual, 2)
			So(NewDate(2023, time.January, 1).DaysUntil(NewDate(2024, time.January, 1)), ShouldEqual, 365)
		})

		Convey("跨度超过 time.Duration 上限", func() {
			start := ParseDate("01/01/0001")
			So(start.Valid(), ShouldBeTrue)
			So(start.DaysUntil(NewDate(2026, time.October, 15)), ShouldEqual, 739903)
			So(NewDate(9999, time.December, 31).DaysUntil(start), ShouldEqual, -3652058)
		})
	})
}
