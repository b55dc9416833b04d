package repository

import (
	"strings"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

// headerIndex 表头列名到下标，忽略前后空格。未知列被丢弃
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, c := range common.Columns {
			if strings.EqualFold(h, c) {
				idx[c] = i
			}
		}
	}
	return idx
}

// toRawRow 按表头把一行单元格转换为 RawRow，缺失的列为空串
func toRawRow(idx map[string]int, record []string) entity.RawRow {
	row := make(entity.RawRow, len(common.Columns))
	for _, c := range common.Columns {
		i, ok := idx[c]
		if ok && i < len(record) {
			row[c] = record[i]
		} else {
			row[c] = ""
		}
	}
	return row
}

// toRecord 按固定列顺序输出
func toRecord(row entity.RawRow) []string {
	record := make([]string, len(common.Columns))
	for i, c := range common.Columns {
		record[i] = row[c]
	}
	return record
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseRecords 第一行为表头，空行跳过
func parseRecords(records [][]string) []entity.RawRow {
	if len(records) == 0 {
		return []entity.RawRow{}
	}
	idx := headerIndex(records[0])
	rows := make([]entity.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, toRawRow(idx, rec))
	}
	return rows
}
