package report

import (
	"sort"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

// GroupMetrics 单个分组的可靠性指标，未定义的指标为 nil
type GroupMetrics struct {
	Key          string
	Counts       StatusCounts
	Failures     int
	MTBF         *float64
	MTTR         *float64
	LastActivity entity.Date
}

// Reliability 计算视图中每个分组的计数、MTBF、MTTR，
// LastActivity 取自未过滤的 table。结果按分组键升序。
func Reliability(v entity.View, t entity.Table, by GroupBy, now time.Time, policy ResolutionPolicy) []GroupMetrics {
	counts := GroupCounts(v, by)
	failures := FailureCounts(v, by)
	mtbf := MTBF(v, by, now)
	mttr := MTTRByGroup(v, by, policy)
	last := LastActivity(t, by)

	rows := make([]GroupMetrics, 0, len(counts))
	for k, c := range counts {
		row := GroupMetrics{
			Key:          k,
			Counts:       c,
			Failures:     failures[k],
			LastActivity: last[k],
		}
		if x, ok := mtbf[k]; ok {
			row.MTBF = &x
		}
		if x, ok := mttr[k]; ok {
			row.MTTR = &x
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

type RankKey string

const (
	RankByCount  RankKey = "count"
	RankByOpen   RankKey = "open"
	RankByClosed RankKey = "closed"
	RankByMTBF   RankKey = "mtbf"
	RankByMTTR   RankKey = "mttr"
)

func (k RankKey) Valid() bool {
	switch k {
	case RankByCount, RankByOpen, RankByClosed, RankByMTBF, RankByMTTR:
		return true
	}
	return false
}

type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

func (o Order) Valid() bool {
	return o == Ascending || o == Descending
}

func (k RankKey) value(m GroupMetrics) (float64, bool) {
	switch k {
	case RankByOpen:
		return float64(m.Counts.Open), true
	case RankByClosed:
		return float64(m.Counts.Closed), true
	case RankByMTBF:
		if m.MTBF == nil {
			return 0, false
		}
		return *m.MTBF, true
	case RankByMTTR:
		if m.MTTR == nil {
			return 0, false
		}
		return *m.MTTR, true
	default:
		return float64(m.Counts.Total), true
	}
}

// Rank 按指标排序，返回新切片。未定义的指标始终排在最后，相同值按分组键升序。
// 例如“最不可靠优先”即 Rank(rows, RankByMTBF, Ascending)。
func Rank(rows []GroupMetrics, key RankKey, order Order) []GroupMetrics {
	out := make([]GroupMetrics, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		vi, oki := key.value(out[i])
		vj, okj := key.value(out[j])
		if oki != okj {
			return oki
		}
		if oki && vi != vj {
			if order == Descending {
				return vi > vj
			}
			return vi < vj
		}
		return out[i].Key < out[j].Key
	})
	return out
}
