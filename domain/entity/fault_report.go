package entity

import "strings"

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ParseStatus 去空格并转大写，空值默认为 OPEN。未知值原样保留，由统计侧归入 other
func ParseStatus(s string) Status {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NAN" {
		return StatusOpen
	}
	return Status(s)
}

func (s Status) Known() bool {
	return s == StatusOpen || s == StatusClosed
}

// FaultReport 一条船舶设备故障记录（notulensi）
type FaultReport struct {
	ID           int64
	Vessel       string
	Unit         string
	Problem      string
	Resolution   string
	OccurredDate Date // Day
	IssuedDate   Date
	ClosedDate   Date
	Remarks      string
	Status       Status
}

// CanonicalKey 分组和比较前统一使用的标识格式
func CanonicalKey(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return strings.ToUpper(s)
}

// RawRow 存储层的一行原始数据，key 为 common.Columns 中的列名
type RawRow map[string]string

// Table 规范化后的全量报告快照，创建后不再修改，变更总是产生新的 Table
type Table struct {
	Reports    []FaultReport
	Generation uint64 // 每次成功变更递增
	NextID     int64  // 下一个可分配的 ID，只增不减
}

func (t Table) Len() int {
	return len(t.Reports)
}

// Find 按 ID 查找，返回记录及其下标
func (t Table) Find(id int64) (FaultReport, int, bool) {
	for i, r := range t.Reports {
		if r.ID == id {
			return r, i, true
		}
	}
	return FaultReport{}, -1, false
}

// View 过滤后的只读投影
type View []FaultReport
