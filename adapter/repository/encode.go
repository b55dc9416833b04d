package repository

import (
	"bytes"
	"encoding/csv"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

type exporter struct {
	sheet string
}

func (e *exporter) Encode(format dependency.ExportFormat, rows []entity.RawRow) ([]byte, error) {
	switch format {
	case dependency.ExportCSV:
		return encodeCSV(rows)
	case dependency.ExportXLSX:
		return encodeXLSX(rows, e.sheet)
	default:
		return nil, errors.Errorf("unsupported export format %q", format)
	}
}

func encodeCSV(rows []entity.RawRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(common.Columns); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}
	for _, row := range rows {
		if err := w.Write(toRecord(row)); err != nil {
			return nil, errors.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}

// encodeXLSX 所有单元格按文本写入，日期保持 DD/MM/YYYY
func encodeXLSX(rows []entity.RawRow, sheet string) ([]byte, error) {
	if sheet == "" {
		sheet = defaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheet {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, errors.Wrapf(err, "new sheet %s", sheet)
		}
		f.SetActiveSheet(idx)
		_ = f.DeleteSheet(defaultSheet)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err := setRow(f, sheet, 1, common.Columns); err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(common.Columns))
	_ = f.SetCellStyle(sheet, "A1", last+"1", headerStyle)

	for i, row := range rows {
		if err := setRow(f, sheet, i+2, toRecord(row)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write xlsx")
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errors.Wrap(err, "cell name")
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &cells), "set row %d", rowNum)
}
