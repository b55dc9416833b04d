package report

import (
	"sort"
	"strconv"
	"strings"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

// Query 过滤条件，各条件之间为 AND 关系，零值表示不过滤
type Query struct {
	Year   *int          // 按发生日期(Day)年份过滤
	Vessel string        // 规范化后精确匹配，"All" 表示全部
	Status entity.Status // OPEN / CLOSED，空表示全部
}

// ParseYear 解析年份选项，空串和 "All" 返回 nil
func ParseYear(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, common.AllOption) {
		return nil, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y <= 0 {
		return nil, invalid("year", "must be a positive integer or All")
	}
	return &y, nil
}

// Filter 在表上应用过滤条件，返回新的视图，不修改原表
func Filter(t entity.Table, q Query) entity.View {
	return FilterView(entity.View(t.Reports), q)
}

// FilterView 在已有视图上继续过滤，幂等且保持顺序
func FilterView(v entity.View, q Query) entity.View {
	vessel := entity.CanonicalKey(q.Vessel)
	if strings.EqualFold(vessel, common.AllOption) {
		vessel = ""
	}
	status := entity.Status(strings.ToUpper(strings.TrimSpace(string(q.Status))))

	out := make(entity.View, 0, len(v))
	for _, r := range v {
		if q.Year != nil && (!r.OccurredDate.Valid() || r.OccurredDate.Year() != *q.Year) {
			continue
		}
		if vessel != "" && entity.CanonicalKey(r.Vessel) != vessel {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Years 表中有效发生日期的年份，降序
func Years(t entity.Table) []int {
	set := make(map[int]struct{})
	for _, r := range t.Reports {
		if r.OccurredDate.Valid() {
			set[r.OccurredDate.Year()] = struct{}{}
		}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Keys 返回表中某个维度出现过的非空取值（升序），用于下拉选项
func Keys(t entity.Table, by GroupBy) []string {
	set := make(map[string]struct{})
	for _, r := range t.Reports {
		if k := by.Key(r); k != "" {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
