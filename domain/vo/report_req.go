package vo

// ReportQuery 公共过滤条件，year / vessel 使用 "All" 表示全部
type ReportQuery struct {
	Year   string `form:"year" json:"year"`
	Vessel string `form:"vessel" json:"vessel" validate:"omitempty,safe_text"`
	Status string `form:"status" json:"status" validate:"omitempty,report_status"`
}

type GroupQuery struct {
	ReportQuery
	GroupBy string `form:"group_by" json:"group_by" validate:"omitempty,oneof=vessel unit"`
}

type ReliabilityQuery struct {
	GroupQuery
	Sort  string `form:"sort" json:"sort" validate:"omitempty,oneof=count open closed mtbf mttr"`
	Order string `form:"order" json:"order" validate:"omitempty,oneof=asc desc"`
}

type TopQuery struct {
	GroupQuery
	Limit int `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

type OldestOpenQuery struct {
	ReportQuery
	Limit int `form:"limit" json:"limit" validate:"omitempty,min=1,max=500"`
}

type ExportQuery struct {
	ReportQuery
	Format string `form:"format" json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// ReportCreateReq 新建报告，日期格式 DD/MM/YYYY。issued_date 为空时取 occurred_date
type ReportCreateReq struct {
	Vessel       string `json:"vessel" validate:"required,safe_text"`
	Unit         string `json:"unit" validate:"omitempty,safe_text"`
	Problem      string `json:"problem" validate:"required,max=2000"`
	Resolution   string `json:"resolution" validate:"omitempty,max=2000"`
	Remarks      string `json:"remarks" validate:"omitempty,max=2000"`
	OccurredDate string `json:"occurred_date" validate:"required,ddmmyyyy"`
	IssuedDate   string `json:"issued_date" validate:"omitempty,ddmmyyyy"`
	ClosedDate   string `json:"closed_date" validate:"omitempty,ddmmyyyy"`
	Status       string `json:"status" validate:"omitempty,report_status"`
}

// ReportUpdateReq 只修改非 nil 字段。closed_date 传空串表示清空
type ReportUpdateReq struct {
	Vessel       *string `json:"vessel" validate:"omitempty,safe_text"`
	Unit         *string `json:"unit" validate:"omitempty,safe_text"`
	Problem      *string `json:"problem" validate:"omitempty,max=2000"`
	Resolution   *string `json:"resolution" validate:"omitempty,max=2000"`
	Remarks      *string `json:"remarks" validate:"omitempty,max=2000"`
	OccurredDate *string `json:"occurred_date" validate:"omitempty,ddmmyyyy"`
	IssuedDate   *string `json:"issued_date" validate:"omitempty,ddmmyyyy"`
	ClosedDate   *string `json:"closed_date" validate:"omitempty,ddmmyyyy"`
	Status       *string `json:"status" validate:"omitempty,report_status"`
}
