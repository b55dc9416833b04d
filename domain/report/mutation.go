package report

import (
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

// Fields 新建报告的完整字段，日期已由调用方转换为 time.Time，零值表示未提供
type Fields struct {
	Vessel       string
	Unit         string
	Problem      string
	Resolution   string
	Remarks      string
	OccurredDate time.Time
	IssuedDate   time.Time // 未提供时取 OccurredDate
	ClosedDate   time.Time
	Status       entity.Status // 未提供时为 OPEN
}

// Patch 更新请求，nil 字段保持不变
type Patch struct {
	Vessel       *string
	Unit         *string
	Problem      *string
	Resolution   *string
	Remarks      *string
	OccurredDate *time.Time
	IssuedDate   *time.Time
	ClosedDate   *time.Time
	Status       *entity.Status
}

// Lookup 按 ID 取记录
func Lookup(t entity.Table, id int64) (entity.FaultReport, error) {
	r, _, ok := t.Find(id)
	if !ok {
		return entity.FaultReport{}, &NotFoundError{ID: id}
	}
	return r, nil
}

// Insert 校验并追加一条新记录，返回新表和分配的 ID
func Insert(t entity.Table, f Fields) (entity.Table, int64, error) {
	r := NormalizeReport(entity.FaultReport{
		Vessel:       f.Vessel,
		Unit:         f.Unit,
		Problem:      f.Problem,
		Resolution:   f.Resolution,
		Remarks:      f.Remarks,
		OccurredDate: entity.DateOf(f.OccurredDate),
		IssuedDate:   entity.DateOf(f.IssuedDate),
		ClosedDate:   entity.DateOf(f.ClosedDate),
		Status:       f.Status,
	})
	if r.IssuedDate.Missing() {
		r.IssuedDate = r.OccurredDate
	}
	r = settleClosedDate(r)
	if err := validate(r); err != nil {
		return t, 0, err
	}

	r.ID = nextID(t)
	reports := make([]entity.FaultReport, 0, len(t.Reports)+1)
	reports = append(reports, t.Reports...)
	reports = append(reports, r)
	return entity.Table{
		Reports:    reports,
		Generation: t.Generation + 1,
		NextID:     r.ID + 1,
	}, r.ID, nil
}

// Update 按 ID 修改已提供的字段并重新校验，切换到 OPEN 会清空结束日期
func Update(t entity.Table, id int64, p Patch) (entity.Table, error) {
	r, idx, ok := t.Find(id)
	if !ok {
		return t, &NotFoundError{ID: id}
	}
	before := r

	if p.Vessel != nil {
		r.Vessel = *p.Vessel
	}
	if p.Unit != nil {
		r.Unit = *p.Unit
	}
	if p.Problem != nil {
		r.Problem = *p.Problem
	}
	if p.Resolution != nil {
		r.Resolution = *p.Resolution
	}
	if p.Remarks != nil {
		r.Remarks = *p.Remarks
	}
	if p.OccurredDate != nil {
		r.OccurredDate = entity.DateOf(*p.OccurredDate)
	}
	if p.IssuedDate != nil {
		r.IssuedDate = entity.DateOf(*p.IssuedDate)
	}
	if p.ClosedDate != nil {
		r.ClosedDate = entity.DateOf(*p.ClosedDate)
	}
	if p.Status != nil {
		r.Status = *p.Status
	}

	r = settleClosedDate(NormalizeReport(r))
	// 历史数据中的无效日期在未被修改时保留，直到有人更正
	occurred := p.OccurredDate != nil || before.OccurredDate.Valid()
	issued := p.IssuedDate != nil || before.IssuedDate.Valid()
	if err := check(r, occurred, issued); err != nil {
		return t, err
	}

	reports := make([]entity.FaultReport, len(t.Reports))
	copy(reports, t.Reports)
	reports[idx] = r
	return entity.Table{
		Reports:    reports,
		Generation: t.Generation + 1,
		NextID:     nextID(t),
	}, nil
}

// Delete 永久删除，ID 不会被复用
func Delete(t entity.Table, id int64) (entity.Table, error) {
	_, idx, ok := t.Find(id)
	if !ok {
		return t, &NotFoundError{ID: id}
	}
	reports := make([]entity.FaultReport, 0, len(t.Reports)-1)
	reports = append(reports, t.Reports[:idx]...)
	reports = append(reports, t.Reports[idx+1:]...)
	return entity.Table{
		Reports:    reports,
		Generation: t.Generation + 1,
		NextID:     nextID(t),
	}, nil
}

// settleClosedDate OPEN 记录不保留结束日期
func settleClosedDate(r entity.FaultReport) entity.FaultReport {
	if r.Status == entity.StatusOpen {
		r.ClosedDate = entity.Date{}
	}
	return r
}

func validate(r entity.FaultReport) error {
	return check(r, true, true)
}

// check occurred / issued 为 false 时不校验对应日期
func check(r entity.FaultReport, occurred, issued bool) error {
	if r.Vessel == "" {
		return invalid("vessel", "must not be empty")
	}
	if r.Problem == "" {
		return invalid("problem", "must not be empty")
	}
	if occurred && !r.OccurredDate.Valid() {
		return invalid("occurred_date", "must be a valid date")
	}
	if issued && !r.IssuedDate.Valid() {
		return invalid("issued_date", "must be a valid date")
	}
	if !r.Status.Known() {
		return invalid("status", "must be OPEN or CLOSED")
	}
	if r.Status == entity.StatusClosed && !r.ClosedDate.Valid() {
		return invalid("closed_date", "is required when status is CLOSED")
	}
	return nil
}

// nextID 取 NextID 与现有最大 ID+1 中较大者，空表从 0 开始
func nextID(t entity.Table) int64 {
	next := t.NextID
	for _, r := range t.Reports {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}
