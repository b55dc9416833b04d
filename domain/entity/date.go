package entity

import (
	"strings"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
)

type DateState int8

const (
	DateMissing DateState = iota
	DateValid
	DateInvalid
)

// Date 报告中的日历日期。无法解析的原始文本以 DateInvalid 保留，不会变成零值时间
type Date struct {
	t     time.Time
	raw   string
	state DateState
}

// NewDate 构造一个有效日期，统一落在 UTC 零点
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t: t, raw: t.Format(common.DateFormat), state: DateValid}
}

// DateOf 取 t 在其自身时区下的日历日期，零值时间视为缺失
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate 按 DD/MM/YYYY 解析，空串为缺失，失败时保留原文并标记为无效
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "<NA>") {
		return Date{}
	}
	t, err := time.Parse(common.DateParseLayout, s)
	if err != nil {
		return Date{raw: s, state: DateInvalid}
	}
	return NewDate(t.Date())
}

func (d Date) State() DateState {
	return d.state
}

func (d Date) Valid() bool {
	return d.state == DateValid
}

func (d Date) Invalid() bool {
	return d.state == DateInvalid
}

func (d Date) Missing() bool {
	return d.state == DateMissing
}

// Time 仅在 Valid 时有意义
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Year() int {
	return d.t.Year()
}

// String 有效日期返回 DD/MM/YYYY，无效日期返回原文，缺失返回空串
func (d Date) String() string {
	return d.raw
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil 返回从 d 到 other 的整天数，两者都必须有效。
// 按 Unix 秒计算，跨度超过 time.Duration 的范围也不会截断
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}
