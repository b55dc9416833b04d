package common

const (
	// DateFormat 报告中所有日期字段的唯一格式 DD/MM/YYYY
	DateFormat = "02/01/2006"

	// AllOption 过滤器中表示“不过滤”的哨兵值
	AllOption = "All"

	ErrorDetailBind = "bind request failed: "

	SpecialCharacters = "<>\\^`{|}"
)

// 持久化列名，顺序即文件/表格中的列顺序，修改需要迁移已有数据
const (
	ColumnID         = "ID"
	ColumnDay        = "Day"
	ColumnVessel     = "Vessel"
	ColumnProblem    = "Permasalahan"
	ColumnResolution = "Penyelesaian"
	ColumnUnit       = "Unit"
	ColumnIssuedDate = "Issued Date"
	ColumnClosedDate = "Closed Date"
	ColumnRemarks    = "Keterangan"
	ColumnStatus     = "Status"
)

// Columns 固定的有序列清单
var Columns = []string{
	ColumnID,
	ColumnDay,
	ColumnVessel,
	ColumnProblem,
	ColumnResolution,
	ColumnUnit,
	ColumnIssuedDate,
	ColumnClosedDate,
	ColumnRemarks,
	ColumnStatus,
}

// DateParseLayout 解析时兼容一位数的日/月，例如 1/3/2024
const DateParseLayout = "2/1/2006"
