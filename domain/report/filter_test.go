package report

import (
	"testing"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func ids(v entity.View) []int64 {
	out := make([]int64, 0, len(v))
	for _, r := range v {
		out = append(out, r.ID)
	}
	return out
}

func TestParseYear(t *testing.T) {
	Convey("TestParseYear", t, func() {
		Convey("All 与空串表示不过滤", func() {
			y, err := ParseYear("All")
			So(err, ShouldBeNil)
			So(y, ShouldBeNil)

			y, err = ParseYear("  ")
			So(err, ShouldBeNil)
			So(y, ShouldBeNil)
		})

		Convey("合法年份", func() {
			y, err := ParseYear("2024")
			So(err, ShouldBeNil)
			So(*y, ShouldEqual, 2024)
		})

		Convey("非法年份", func() {
			_, err := ParseYear("twenty")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("TestFilter", t, func() {
		tbl := sampleTable()

		Convey("无条件时返回全部记录且保持顺序", func() {
			v := Filter(tbl, Query{})
			So(ids(v), ShouldResemble, []int64{0, 1, 2})
		})

		Convey("year=All 与不过滤等价", func() {
			y, _ := ParseYear("All")
			So(ids(Filter(tbl, Query{Year: y, Vessel: "All"})), ShouldResemble, ids(Filter(tbl, Query{})))
		})

		Convey("按年份过滤时排除无效日期", func() {
			y := 2024
			v := Filter(tbl, Query{Year: &y})
			So(ids(v), ShouldResemble, []int64{0})
		})

		Convey("船名比较前规范化", func() {
			v := Filter(tbl, Query{Vessel: " kcl 1 "})
			So(ids(v), ShouldResemble, []int64{0, 1})
		})

		Convey("状态不区分大小写", func() {
			v := Filter(tbl, Query{Status: "closed"})
			So(ids(v), ShouldResemble, []int64{1})
		})

		Convey("条件之间为 AND", func() {
			y := 2023
			v := Filter(tbl, Query{Year: &y, Vessel: "KCL 1", Status: entity.StatusOpen})
			So(len(v), ShouldEqual, 0)
		})

		Convey("过滤幂等且不修改原表", func() {
			q := Query{Vessel: "KCL 1"}
			once := Filter(tbl, q)
			So(FilterView(once, q), ShouldResemble, once)
			So(tbl.Reports[0].Vessel, ShouldEqual, "KCL 1")
			So(tbl.Len(), ShouldEqual, 3)
		})
	})
}

func TestYearsAndKeys(t *testing.T) {
	Convey("TestYearsAndKeys", t, func() {
		tbl := sampleTable()
		tbl.Reports = append(tbl.Reports, entity.FaultReport{ID: 3, Vessel: "ZED", OccurredDate: date(2021, time.January, 1)})

		So(Years(tbl), ShouldResemble, []int{2024, 2023, 2021})
		So(Keys(tbl, GroupByVessel), ShouldResemble, []string{"ABC", "KCL 1", "ZED"})
		So(Keys(tbl, GroupByUnit), ShouldResemble, []string{"DECK", "ENGINE"})
	})
}
