package report

import (
	"strconv"
	"strings"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"github.com/mitchellh/mapstructure"
)

// rawRecord 原始行的中间结构
type rawRecord struct {
	ID         string `mapstructure:"ID"`
	Day        string `mapstructure:"Day"`
	Vessel     string `mapstructure:"Vessel"`
	Problem    string `mapstructure:"Permasalahan"`
	Resolution string `mapstructure:"Penyelesaian"`
	Unit       string `mapstructure:"Unit"`
	IssuedDate string `mapstructure:"Issued Date"`
	ClosedDate string `mapstructure:"Closed Date"`
	Remarks    string `mapstructure:"Keterangan"`
	Status     string `mapstructure:"Status"`
}

func decodeRow(row entity.RawRow) rawRecord {
	var rec rawRecord
	if err := mapstructure.Decode(map[string]string(row), &rec); err != nil {
		log.Warnf("Failed to decode report row %v: %v", row, err)
	}
	return rec
}

// Normalize 将存储层原始行转换为规范化的表，保持原始行顺序。
// 没有合法 ID 的行（旧文件、重复 ID）按行序分配到当前最大 ID 之后。
func Normalize(rows []entity.RawRow) entity.Table {
	reports := make([]entity.FaultReport, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	var pending []int
	maxID := int64(-1)

	for _, row := range rows {
		rec := decodeRow(row)
		r := NormalizeReport(entity.FaultReport{
			Vessel:       rec.Vessel,
			Unit:         rec.Unit,
			Problem:      rec.Problem,
			Resolution:   rec.Resolution,
			OccurredDate: entity.ParseDate(rec.Day),
			IssuedDate:   entity.ParseDate(rec.IssuedDate),
			ClosedDate:   entity.ParseDate(rec.ClosedDate),
			Remarks:      rec.Remarks,
			Status:       entity.Status(rec.Status),
		})

		id, err := strconv.ParseInt(strings.TrimSpace(rec.ID), 10, 64)
		if _, dup := seen[id]; err != nil || id < 0 || dup {
			pending = append(pending, len(reports))
		} else {
			seen[id] = struct{}{}
			r.ID = id
			if id > maxID {
				maxID = id
			}
		}
		reports = append(reports, r)
	}

	next := maxID + 1
	for _, i := range pending {
		reports[i].ID = next
		next++
	}
	return entity.Table{Reports: reports, NextID: next}
}

// NormalizeReport 规范化单条记录，幂等
func NormalizeReport(r entity.FaultReport) entity.FaultReport {
	r.Vessel = entity.CanonicalKey(r.Vessel)
	r.Unit = entity.CanonicalKey(r.Unit)
	r.Problem = cleanText(r.Problem)
	r.Resolution = cleanText(r.Resolution)
	r.Remarks = cleanText(r.Remarks)
	r.Status = entity.ParseStatus(string(r.Status))
	return r
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "nan" || s == "<NA>" {
		return ""
	}
	return s
}

// Denormalize 将表还原为存储层行，日期按 DD/MM/YYYY 输出，无效日期保留原文
func Denormalize(t entity.Table) []entity.RawRow {
	rows := make([]entity.RawRow, 0, len(t.Reports))
	for _, r := range t.Reports {
		rows = append(rows, ToRawRow(r))
	}
	return rows
}

func ToRawRow(r entity.FaultReport) entity.RawRow {
	return entity.RawRow{
		common.ColumnID:         strconv.FormatInt(r.ID, 10),
		common.ColumnDay:        r.OccurredDate.String(),
		common.ColumnVessel:     r.Vessel,
		common.ColumnProblem:    r.Problem,
		common.ColumnResolution: r.Resolution,
		common.ColumnUnit:       r.Unit,
		common.ColumnIssuedDate: r.IssuedDate.String(),
		common.ColumnClosedDate: r.ClosedDate.String(),
		common.ColumnRemarks:    r.Remarks,
		common.ColumnStatus:     string(r.Status),
	}
}

// DataQuality 加载时的数据质量概况，用于日志和接口展示
type DataQuality struct {
	InvalidOccurred int `json:"invalid_occurred_date"`
	InvalidIssued   int `json:"invalid_issued_date"`
	InvalidClosed   int `json:"invalid_closed_date"`
	UnknownStatus   int `json:"unknown_status"`
	// ClosedWithoutDate 状态为 CLOSED 但结束日期缺失或无效
	ClosedWithoutDate int `json:"closed_without_date"`
}

func Inspect(t entity.Table) DataQuality {
	var q DataQuality
	for _, r := range t.Reports {
		if r.OccurredDate.Invalid() {
			q.InvalidOccurred++
		}
		if r.IssuedDate.Invalid() {
			q.InvalidIssued++
		}
		if r.ClosedDate.Invalid() {
			q.InvalidClosed++
		}
		if !r.Status.Known() {
			q.UnknownStatus++
		}
		if r.Status == entity.StatusClosed && !r.ClosedDate.Valid() {
			q.ClosedWithoutDate++
		}
	}
	return q
}
