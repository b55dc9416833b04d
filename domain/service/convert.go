package service

import (
	"strconv"
	"strings"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/report"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/vo"
	"github.com/pkg/errors"
)

func toQuery(q vo.ReportQuery) (report.Query, error) {
	year, err := report.ParseYear(q.Year)
	if err != nil {
		return report.Query{}, err
	}
	return report.Query{
		Year:   year,
		Vessel: q.Vessel,
		Status: entity.Status(strings.ToUpper(strings.TrimSpace(q.Status))),
	}, nil
}

func groupBy(s string) report.GroupBy {
	if s == "" {
		return report.GroupByVessel
	}
	return report.GroupBy(s)
}

// parseInputDate 界面输入的 DD/MM/YYYY，空串返回零值
func parseInputDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(common.DateParseLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrap(&report.ValidationError{Field: field, Reason: "must be DD/MM/YYYY"}, s)
	}
	return t, nil
}

func toFields(req *vo.ReportCreateReq) (report.Fields, error) {
	f := report.Fields{
		Vessel:     req.Vessel,
		Unit:       req.Unit,
		Problem:    req.Problem,
		Resolution: req.Resolution,
		Remarks:    req.Remarks,
		Status:     entity.ParseStatus(req.Status),
	}
	var err error
	if f.OccurredDate, err = parseInputDate("occurred_date", req.OccurredDate); err != nil {
		return f, err
	}
	if f.IssuedDate, err = parseInputDate("issued_date", req.IssuedDate); err != nil {
		return f, err
	}
	if f.ClosedDate, err = parseInputDate("closed_date", req.ClosedDate); err != nil {
		return f, err
	}
	return f, nil
}

func toPatch(req *vo.ReportUpdateReq) (report.Patch, error) {
	p := report.Patch{
		Vessel:     req.Vessel,
		Unit:       req.Unit,
		Problem:    req.Problem,
		Resolution: req.Resolution,
		Remarks:    req.Remarks,
	}
	dates := []struct {
		field string
		in    *string
		out   **time.Time
	}{
		{"occurred_date", req.OccurredDate, &p.OccurredDate},
		{"issued_date", req.IssuedDate, &p.IssuedDate},
		{"closed_date", req.ClosedDate, &p.ClosedDate},
	}
	for _, d := range dates {
		if d.in == nil {
			continue
		}
		t, err := parseInputDate(d.field, *d.in)
		if err != nil {
			return p, err
		}
		*d.out = &t
	}
	if req.Status != nil {
		s := entity.ParseStatus(*req.Status)
		p.Status = &s
	}
	return p, nil
}

func toReportResp(r entity.FaultReport) vo.ReportResp {
	resp := vo.ReportResp{
		ID:           r.ID,
		Vessel:       r.Vessel,
		Unit:         r.Unit,
		Problem:      r.Problem,
		Resolution:   r.Resolution,
		OccurredDate: r.OccurredDate.String(),
		IssuedDate:   r.IssuedDate.String(),
		ClosedDate:   r.ClosedDate.String(),
		Remarks:      r.Remarks,
		Status:       string(r.Status),
	}
	if r.OccurredDate.Invalid() {
		resp.InvalidFields = append(resp.InvalidFields, "occurred_date")
	}
	if r.IssuedDate.Invalid() {
		resp.InvalidFields = append(resp.InvalidFields, "issued_date")
	}
	if r.ClosedDate.Invalid() {
		resp.InvalidFields = append(resp.InvalidFields, "closed_date")
	}
	return resp
}

func toCountsResp(c report.StatusCounts) vo.StatusCountsResp {
	return vo.StatusCountsResp{Total: c.Total, Open: c.Open, Closed: c.Closed, Other: c.Other}
}

func toQualityResp(q report.DataQuality) vo.DataQualityResp {
	return vo.DataQualityResp(q)
}

// display 未定义的指标显示为 N/A，保留两位小数
func display(x *float64) string {
	if x == nil {
		return vo.NotAvailable
	}
	return strconv.FormatFloat(*x, 'f', 2, 64)
}

func displayDate(d entity.Date) string {
	if !d.Valid() {
		return vo.NotAvailable
	}
	return d.String()
}
