package dependency

import "devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// Exporter 把原始行编码为可下载的文件内容，列顺序与存储一致
type Exporter interface {
	Encode(format ExportFormat, rows []entity.RawRow) ([]byte, error)
}
