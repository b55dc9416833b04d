package vo

// NotAvailable 指标未定义时的展示值，不能显示为 0
const NotAvailable = "N/A"

type BaseResp struct {
	Success int `json:"success"`
}

type ReportResp struct {
	ID           int64  `json:"id"`
	Vessel       string `json:"vessel"`
	Unit         string `json:"unit"`
	Problem      string `json:"problem"`
	Resolution   string `json:"resolution"`
	OccurredDate string `json:"occurred_date"`
	IssuedDate   string `json:"issued_date"`
	ClosedDate   string `json:"closed_date"`
	Remarks      string `json:"remarks"`
	Status       string `json:"status"`
	// InvalidFields 日期无法解析的字段，原文保留在对应字段中
	InvalidFields []string `json:"invalid_fields,omitempty"`
}

type ReportListResp struct {
	Total   int          `json:"total"`
	Entries []ReportResp `json:"entries"`
}

type CreateResp struct {
	ID int64 `json:"id"`
}

type StatusCountsResp struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
	Other  int `json:"other"`
}

type DataQualityResp struct {
	InvalidOccurred   int `json:"invalid_occurred_date"`
	InvalidIssued     int `json:"invalid_issued_date"`
	InvalidClosed     int `json:"invalid_closed_date"`
	UnknownStatus     int `json:"unknown_status"`
	ClosedWithoutDate int `json:"closed_without_date"`
}

type SummaryResp struct {
	Counts           StatusCountsResp `json:"counts"`
	MTTR             *float64         `json:"mttr"`
	MTTRDisplay      string           `json:"mttr_display"`
	ResolutionPolicy string           `json:"resolution_policy"`
	Years            []int            `json:"years"`
	Vessels          []string         `json:"vessels"`
	Units            []string         `json:"units"`
	DataQuality      DataQualityResp  `json:"data_quality"`
	Generation       uint64           `json:"generation"`
	Degraded         bool             `json:"degraded"`
}

// GroupCardResp 单个船舶/单元的卡片
type GroupCardResp struct {
	Key          string `json:"key"`
	Total        int    `json:"total"`
	Open         int    `json:"open"`
	Closed       int    `json:"closed"`
	LastActivity string `json:"last_activity"`
}

type GroupsResp struct {
	GroupBy string          `json:"group_by"`
	Items   []GroupCardResp `json:"items"`
}

type ReliabilityRowResp struct {
	Key          string           `json:"key"`
	Counts       StatusCountsResp `json:"counts"`
	Failures     int              `json:"failures"`
	MTBF         *float64         `json:"mtbf"`
	MTBFDisplay  string           `json:"mtbf_display"`
	MTTR         *float64         `json:"mttr"`
	MTTRDisplay  string           `json:"mttr_display"`
	LastActivity string           `json:"last_activity"`
}

type ReliabilityResp struct {
	GroupBy     string               `json:"group_by"`
	Sort        string               `json:"sort"`
	Order       string               `json:"order"`
	WindowStart string               `json:"window_start"`
	WindowDays  *int                 `json:"window_days"`
	Items       []ReliabilityRowResp `json:"items"`
}

type TrendPointResp struct {
	Month  string `json:"month"`
	Total  int    `json:"total"`
	Open   int    `json:"open"`
	Closed int    `json:"closed"`
	Other  int    `json:"other"`
}

type TrendResp struct {
	Items []TrendPointResp `json:"items"`
}

type GroupCountResp struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type TopResp struct {
	GroupBy string           `json:"group_by"`
	Items   []GroupCountResp `json:"items"`
}

type AgedReportResp struct {
	ReportResp
	AgeDays int `json:"age_days"`
}

type OldestOpenResp struct {
	Items []AgedReportResp `json:"items"`
}

type ReloadResp struct {
	Rows        int             `json:"rows"`
	Generation  uint64          `json:"generation"`
	DataQuality DataQualityResp `json:"data_quality"`
}

type HealthResp struct {
	Status     string `json:"status"`
	Store      string `json:"store"`
	Rows       int    `json:"rows"`
	Generation uint64 `json:"generation"`
	Degraded   bool   `json:"degraded"`
	LastError  string `json:"last_error,omitempty"`
}

// ExportFile 导出文件内容
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
