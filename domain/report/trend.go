package report

import (
	"sort"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

const DefaultOldestOpenLimit = 15

type TrendPoint struct {
	Month  string // YYYY-MM
	Counts StatusCounts
}

// MonthlyTrend 按发生月份统计各状态数量，月份升序，无效日期不计入
func MonthlyTrend(v entity.View) []TrendPoint {
	byMonth := make(map[string]StatusCounts)
	for _, r := range v {
		if !r.OccurredDate.Valid() {
			continue
		}
		m := r.OccurredDate.Time().Format("2006-01")
		c := byMonth[m]
		c.add(r.Status)
		byMonth[m] = c
	}
	points := make([]TrendPoint, 0, len(byMonth))
	for m, c := range byMonth {
		points = append(points, TrendPoint{Month: m, Counts: c})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}

type AgedReport struct {
	Report  entity.FaultReport
	AgeDays int
}

// OldestOpen 仍为 OPEN 的记录按持续天数降序，limit <= 0 时使用默认值
func OldestOpen(v entity.View, now time.Time, limit int) []AgedReport {
	if limit <= 0 {
		limit = DefaultOldestOpenLimit
	}
	today := entity.DateOf(now)
	aged := make([]AgedReport, 0)
	for _, r := range v {
		if r.Status != entity.StatusOpen || !r.OccurredDate.Valid() {
			continue
		}
		aged = append(aged, AgedReport{Report: r, AgeDays: r.OccurredDate.DaysUntil(today)})
	}
	sort.SliceStable(aged, func(i, j int) bool {
		if aged[i].AgeDays != aged[j].AgeDays {
			return aged[i].AgeDays > aged[j].AgeDays
		}
		return aged[i].Report.ID < aged[j].Report.ID
	})
	if len(aged) > limit {
		aged = aged[:limit]
	}
	return aged
}

type GroupCount struct {
	Key   string
	Count int
}

// TopGroups 按记录数降序取前 limit 个分组，limit <= 0 表示全部
func TopGroups(v entity.View, by GroupBy, limit int) []GroupCount {
	counts := GroupCounts(v, by)
	out := make([]GroupCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, GroupCount{Key: k, Count: c.Total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
