package report

import (
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

type GroupBy string

const (
	GroupByVessel GroupBy = "vessel"
	GroupByUnit   GroupBy = "unit"
)

func (g GroupBy) Valid() bool {
	return g == GroupByVessel || g == GroupByUnit
}

// Key 取记录在该维度上的规范化分组键
func (g GroupBy) Key(r entity.FaultReport) string {
	if g == GroupByUnit {
		return entity.CanonicalKey(r.Unit)
	}
	return entity.CanonicalKey(r.Vessel)
}

// ResolutionPolicy 处理时长的天数口径，整个进程只使用一种
type ResolutionPolicy string

const (
	// ResolutionExclusive closed - issued
	ResolutionExclusive ResolutionPolicy = "exclusive"
	// ResolutionInclusive closed - issued + 1，首尾两天都计入
	ResolutionInclusive ResolutionPolicy = "inclusive"
)

func (p ResolutionPolicy) Valid() bool {
	return p == ResolutionExclusive || p == ResolutionInclusive
}

type StatusCounts struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
	Other  int `json:"other"`
}

func (c *StatusCounts) add(s entity.Status) {
	c.Total++
	switch s {
	case entity.StatusOpen:
		c.Open++
	case entity.StatusClosed:
		c.Closed++
	default:
		c.Other++
	}
}

// Counts 按状态统计，未知状态计入 Other
func Counts(v entity.View) StatusCounts {
	var c StatusCounts
	for _, r := range v {
		c.add(r.Status)
	}
	return c
}

// GroupCounts 按船舶或单元分组统计状态，视图中不存在的分组不会出现
func GroupCounts(v entity.View, by GroupBy) map[string]StatusCounts {
	out := make(map[string]StatusCounts)
	for _, r := range v {
		k := by.Key(r)
		c := out[k]
		c.add(r.Status)
		out[k] = c
	}
	return out
}

// ResolutionTime 单条记录的处理天数。
// 仅对 CLOSED 且 issued/closed 日期都有效的记录有定义，结果非正时视为无效。
func ResolutionTime(r entity.FaultReport, policy ResolutionPolicy) (int, bool) {
	if r.Status != entity.StatusClosed || !r.IssuedDate.Valid() || !r.ClosedDate.Valid() {
		return 0, false
	}
	days := r.IssuedDate.DaysUntil(r.ClosedDate)
	if policy == ResolutionInclusive {
		days++
	}
	if days <= 0 {
		return 0, false
	}
	return days, true
}

// MTTR 视图内有效处理天数的平均值，没有有效值时第二个返回值为 false
func MTTR(v entity.View, policy ResolutionPolicy) (float64, bool) {
	var sum, n int
	for _, r := range v {
		if d, ok := ResolutionTime(r, policy); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// MTTRByGroup 分组 MTTR，没有有效处理时长的分组不出现
func MTTRByGroup(v entity.View, by GroupBy, policy ResolutionPolicy) map[string]float64 {
	sums := make(map[string]int)
	ns := make(map[string]int)
	for _, r := range v {
		if d, ok := ResolutionTime(r, policy); ok {
			k := by.Key(r)
			sums[k] += d
			ns[k]++
		}
	}
	out := make(map[string]float64, len(ns))
	for k, n := range ns {
		out[k] = float64(sums[k]) / float64(n)
	}
	return out
}

// ObservationWindow 视图中最早有效发生日期到 now 的整天数
func ObservationWindow(v entity.View, now time.Time) (entity.Date, int, bool) {
	var start entity.Date
	for _, r := range v {
		if !r.OccurredDate.Valid() {
			continue
		}
		if !start.Valid() || r.OccurredDate.Before(start) {
			start = r.OccurredDate
		}
	}
	if !start.Valid() {
		return start, 0, false
	}
	return start, start.DaysUntil(entity.DateOf(now)), true
}

// FailureCounts 各分组中发生日期有效的记录数
func FailureCounts(v entity.View, by GroupBy) map[string]int {
	out := make(map[string]int)
	for _, r := range v {
		if r.OccurredDate.Valid() {
			out[by.Key(r)]++
		}
	}
	return out
}

// MTBF 观察窗口天数 / 分组故障次数。窗口非正或分组无故障时该分组不出现
func MTBF(v entity.View, by GroupBy, now time.Time) map[string]float64 {
	out := make(map[string]float64)
	_, window, ok := ObservationWindow(v, now)
	if !ok || window <= 0 {
		return out
	}
	for k, n := range FailureCounts(v, by) {
		if n > 0 {
			out[k] = float64(window) / float64(n)
		}
	}
	return out
}

// LastActivity 各分组在未过滤全表中最晚的有效 issued 日期
func LastActivity(t entity.Table, by GroupBy) map[string]entity.Date {
	out := make(map[string]entity.Date)
	for _, r := range t.Reports {
		if !r.IssuedDate.Valid() {
			continue
		}
		k := by.Key(r)
		if cur, ok := out[k]; !ok || r.IssuedDate.After(cur) {
			out[k] = r.IssuedDate
		}
	}
	return out
}
