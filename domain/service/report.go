package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/report"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/vo"
	"github.com/pkg/errors"
)

// ErrStore 后端存储读写失败
var ErrStore = errors.New("record store unavailable")

const cacheKeyPrefix = "sfr"

//go:generate mockgen -source ./report.go -destination ../../mock/service/mock_report_service.go -package mock
type ReportService interface {
	// Load 从存储加载全表，失败时保留上一份快照并进入降级状态
	Load(ctx context.Context) core.ServiceError
	Reload(ctx context.Context) (vo.ReloadResp, core.ServiceError)
	Snapshot(ctx context.Context) (entity.Table, core.ServiceError)

	List(ctx context.Context, q vo.ReportQuery) (vo.ReportListResp, core.ServiceError)
	Get(ctx context.Context, id int64) (vo.ReportResp, core.ServiceError)
	Summary(ctx context.Context, q vo.ReportQuery) (vo.SummaryResp, core.ServiceError)
	Groups(ctx context.Context, q vo.GroupQuery) (vo.GroupsResp, core.ServiceError)
	Reliability(ctx context.Context, q vo.ReliabilityQuery) (vo.ReliabilityResp, core.ServiceError)
	Trend(ctx context.Context, q vo.ReportQuery) (vo.TrendResp, core.ServiceError)
	Top(ctx context.Context, q vo.TopQuery) (vo.TopResp, core.ServiceError)
	OldestOpen(ctx context.Context, q vo.OldestOpenQuery) (vo.OldestOpenResp, core.ServiceError)
	Export(ctx context.Context, q vo.ExportQuery) (vo.ExportFile, core.ServiceError)

	Create(ctx context.Context, req *vo.ReportCreateReq) (int64, core.ServiceError)
	Update(ctx context.Context, id int64, req *vo.ReportUpdateReq) core.ServiceError
	Delete(ctx context.Context, id int64) core.ServiceError

	Health(ctx context.Context) vo.HealthResp
}

type ReportOptions struct {
	Policy          report.ResolutionPolicy
	CacheTTL        time.Duration
	OldestOpenLimit int
}

type reportService struct {
	store    dependency.RecordStore
	cache    dependency.Cache
	events   dependency.EventPublisher
	exporter dependency.Exporter
	opts     ReportOptions
	now      func() time.Time
	// instance 区分进程，共享 Redis 时重启后的 generation 不会命中旧键
	instance string

	// 读取方拿到的是不可变快照
	mu      sync.RWMutex
	table   entity.Table
	loaded  bool
	lastErr error

	// 变更串行执行
	writeMu sync.Mutex

	keysMu sync.Mutex
	keys   map[uint64]map[string]struct{}
}

func newReportService(store dependency.RecordStore, cache dependency.Cache, events dependency.EventPublisher,
	exporter dependency.Exporter, opts ReportOptions) *reportService {
	if !opts.Policy.Valid() {
		opts.Policy = report.ResolutionExclusive
	}
	if opts.OldestOpenLimit <= 0 {
		opts.OldestOpenLimit = report.DefaultOldestOpenLimit
	}
	return &reportService{
		store:    store,
		cache:    cache,
		events:   events,
		exporter: exporter,
		opts:     opts,
		now:      time.Now,
		instance: strconv.FormatInt(time.Now().UnixNano(), 36),
		keys:     make(map[uint64]map[string]struct{}),
	}
}

func (s *reportService) current() (entity.Table, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.loaded, s.lastErr
}

func (s *reportService) swap(t entity.Table) {
	s.mu.Lock()
	s.table = t
	s.loaded = true
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *reportService) degrade(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// fetch 读取并规范化存储中的全表，同时返回存储中保存的 ID 高水位。
// generation 在当前快照基础上延续，NextID 取规范化结果、存储高水位与当前快照中的最大值
func (s *reportService) fetch(ctx context.Context) (entity.Table, int64, core.ServiceError) {
	rows, rerr := s.store.LoadAll(ctx)
	if rerr == nil {
		var stored int64
		stored, rerr = s.store.LoadNextID(ctx)
		if rerr == nil {
			cur, _, _ := s.current()
			t := report.Normalize(rows)
			t.Generation = cur.Generation
			t.NextID = max(t.NextID, stored, cur.NextID)
			return t, stored, nil
		}
	}
	log.Errorf("Failed to load reports from %s store: %v", s.store.Kind(), rerr)
	err := errors.Wrap(ErrStore, rerr.Error())
	s.degrade(err)
	return entity.Table{}, 0, NewSvcStoreError(err)
}

func (s *reportService) storeError(action dependency.ChangeAction, rerr core.RepoError) core.ServiceError {
	log.Errorw("failed to persist reports", "store", s.store.Kind(), "action", action, "err", rerr.Error())
	err := errors.Wrap(ErrStore, rerr.Error())
	s.degrade(err)
	return NewSvcStoreError(err)
}

func (s *reportService) Load(ctx context.Context) core.ServiceError {
	_, err := s.Reload(ctx)
	return err
}

func (s *reportService) Reload(ctx context.Context) (vo.ReloadResp, core.ServiceError) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t, _, err := s.fetch(ctx)
	if err != nil {
		return vo.ReloadResp{}, err
	}
	old, _, _ := s.current()
	t.Generation = old.Generation + 1
	s.swap(t)
	s.invalidate(ctx, old.Generation)

	q := report.Inspect(t)
	log.Infow("reports loaded", "store", s.store.Kind(), "rows", t.Len(), "generation", t.Generation,
		"invalid_occurred", q.InvalidOccurred, "invalid_issued", q.InvalidIssued, "invalid_closed", q.InvalidClosed,
		"unknown_status", q.UnknownStatus, "closed_without_date", q.ClosedWithoutDate)
	s.publish(ctx, dependency.ActionReload, entity.FaultReport{ID: -1}, t.Generation)
	return vo.ReloadResp{Rows: t.Len(), Generation: t.Generation, DataQuality: toQualityResp(q)}, nil
}

// Snapshot 返回当前快照，尚未成功加载过时先尝试加载
func (s *reportService) Snapshot(ctx context.Context) (entity.Table, core.ServiceError) {
	t, loaded, lastErr := s.current()
	if loaded {
		return t, nil
	}
	if err := s.Load(ctx); err != nil {
		return entity.Table{}, err
	}
	if lastErr != nil {
		log.Infof("Report store recovered after error: %v", lastErr)
	}
	t, _, _ = s.current()
	return t, nil
}

func (s *reportService) view(ctx context.Context, q vo.ReportQuery) (entity.Table, entity.View, core.ServiceError) {
	t, err := s.Snapshot(ctx)
	if err != nil {
		return t, nil, err
	}
	query, qerr := toQuery(q)
	if qerr != nil {
		return t, nil, NewSvcInvalidParameterError(qerr)
	}
	return t, report.Filter(t, query), nil
}

func (s *reportService) List(ctx context.Context, q vo.ReportQuery) (vo.ReportListResp, core.ServiceError) {
	_, v, err := s.view(ctx, q)
	if err != nil {
		return vo.ReportListResp{}, err
	}
	resp := vo.ReportListResp{Total: len(v), Entries: make([]vo.ReportResp, 0, len(v))}
	for _, r := range v {
		resp.Entries = append(resp.Entries, toReportResp(r))
	}
	return resp, nil
}

func (s *reportService) Get(ctx context.Context, id int64) (vo.ReportResp, core.ServiceError) {
	t, err := s.Snapshot(ctx)
	if err != nil {
		return vo.ReportResp{}, err
	}
	r, lerr := report.Lookup(t, id)
	if lerr != nil {
		return vo.ReportResp{}, fromDomainError(lerr)
	}
	return toReportResp(r), nil
}

func (s *reportService) Summary(ctx context.Context, q vo.ReportQuery) (vo.SummaryResp, core.ServiceError) {
	t, v, err := s.view(ctx, q)
	if err != nil {
		return vo.SummaryResp{}, err
	}
	_, _, lastErr := s.current()
	resp := cached(ctx, s, t.Generation, "summary", q, false, func() vo.SummaryResp {
		resp := vo.SummaryResp{
			Counts:           toCountsResp(report.Counts(v)),
			ResolutionPolicy: string(s.opts.Policy),
			Years:            report.Years(t),
			Vessels:          report.Keys(t, report.GroupByVessel),
			Units:            report.Keys(t, report.GroupByUnit),
			DataQuality:      toQualityResp(report.Inspect(t)),
			Generation:       t.Generation,
		}
		if m, ok := report.MTTR(v, s.opts.Policy); ok {
			resp.MTTR = &m
		}
		resp.MTTRDisplay = display(resp.MTTR)
		return resp
	})
	resp.Degraded = lastErr != nil
	return resp, nil
}

func (s *reportService) Groups(ctx context.Context, q vo.GroupQuery) (vo.GroupsResp, core.ServiceError) {
	t, v, err := s.view(ctx, q.ReportQuery)
	if err != nil {
		return vo.GroupsResp{}, err
	}
	by := groupBy(q.GroupBy)
	return cached(ctx, s, t.Generation, "groups", q, false, func() vo.GroupsResp {
		counts := report.GroupCounts(v, by)
		last := report.LastActivity(t, by)
		resp := vo.GroupsResp{GroupBy: string(by), Items: make([]vo.GroupCardResp, 0, len(counts))}
		for _, k := range sortedKeys(counts) {
			c := counts[k]
			resp.Items = append(resp.Items, vo.GroupCardResp{
				Key:          k,
				Total:        c.Total,
				Open:         c.Open,
				Closed:       c.Closed,
				LastActivity: displayDate(last[k]),
			})
		}
		return resp
	}), nil
}

func (s *reportService) Reliability(ctx context.Context, q vo.ReliabilityQuery) (vo.ReliabilityResp, core.ServiceError) {
	t, v, err := s.view(ctx, q.ReportQuery)
	if err != nil {
		return vo.ReliabilityResp{}, err
	}
	by := groupBy(q.GroupBy)
	key := report.RankByMTBF
	if q.Sort != "" {
		key = report.RankKey(q.Sort)
	}
	order := report.Ascending
	if q.Order != "" {
		order = report.Order(q.Order)
	}
	if !by.Valid() || !key.Valid() || !order.Valid() {
		return vo.ReliabilityResp{}, NewSvcInvalidParameterError(errors.Errorf("unsupported group_by/sort/order %q/%q/%q", by, key, order))
	}

	now := s.now()
	return cached(ctx, s, t.Generation, "reliability", q, true, func() vo.ReliabilityResp {
		resp := vo.ReliabilityResp{GroupBy: string(by), Sort: string(key), Order: string(order), WindowStart: vo.NotAvailable}
		if start, days, ok := report.ObservationWindow(v, now); ok {
			resp.WindowStart = start.String()
			resp.WindowDays = &days
		}
		rows := report.Rank(report.Reliability(v, t, by, now, s.opts.Policy), key, order)
		resp.Items = make([]vo.ReliabilityRowResp, 0, len(rows))
		for _, m := range rows {
			resp.Items = append(resp.Items, vo.ReliabilityRowResp{
				Key:          m.Key,
				Counts:       toCountsResp(m.Counts),
				Failures:     m.Failures,
				MTBF:         m.MTBF,
				MTBFDisplay:  display(m.MTBF),
				MTTR:         m.MTTR,
				MTTRDisplay:  display(m.MTTR),
				LastActivity: displayDate(m.LastActivity),
			})
		}
		return resp
	}), nil
}

func (s *reportService) Trend(ctx context.Context, q vo.ReportQuery) (vo.TrendResp, core.ServiceError) {
	t, v, err := s.view(ctx, q)
	if err != nil {
		return vo.TrendResp{}, err
	}
	return cached(ctx, s, t.Generation, "trend", q, false, func() vo.TrendResp {
		points := report.MonthlyTrend(v)
		resp := vo.TrendResp{Items: make([]vo.TrendPointResp, 0, len(points))}
		for _, p := range points {
			resp.Items = append(resp.Items, vo.TrendPointResp{
				Month:  p.Month,
				Total:  p.Counts.Total,
				Open:   p.Counts.Open,
				Closed: p.Counts.Closed,
				Other:  p.Counts.Other,
			})
		}
		return resp
	}), nil
}

func (s *reportService) Top(ctx context.Context, q vo.TopQuery) (vo.TopResp, core.ServiceError) {
	t, v, err := s.view(ctx, q.ReportQuery)
	if err != nil {
		return vo.TopResp{}, err
	}
	by := groupBy(q.GroupBy)
	return cached(ctx, s, t.Generation, "top", q, false, func() vo.TopResp {
		groups := report.TopGroups(v, by, q.Limit)
		resp := vo.TopResp{GroupBy: string(by), Items: make([]vo.GroupCountResp, 0, len(groups))}
		for _, g := range groups {
			resp.Items = append(resp.Items, vo.GroupCountResp{Key: g.Key, Count: g.Count})
		}
		return resp
	}), nil
}

func (s *reportService) OldestOpen(ctx context.Context, q vo.OldestOpenQuery) (vo.OldestOpenResp, core.ServiceError) {
	t, v, err := s.view(ctx, q.ReportQuery)
	if err != nil {
		return vo.OldestOpenResp{}, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.opts.OldestOpenLimit
	}
	now := s.now()
	return cached(ctx, s, t.Generation, "oldest", q, true, func() vo.OldestOpenResp {
		aged := report.OldestOpen(v, now, limit)
		resp := vo.OldestOpenResp{Items: make([]vo.AgedReportResp, 0, len(aged))}
		for _, a := range aged {
			resp.Items = append(resp.Items, vo.AgedReportResp{ReportResp: toReportResp(a.Report), AgeDays: a.AgeDays})
		}
		return resp
	}), nil
}

func (s *reportService) Export(ctx context.Context, q vo.ExportQuery) (vo.ExportFile, core.ServiceError) {
	_, v, err := s.view(ctx, q.ReportQuery)
	if err != nil {
		return vo.ExportFile{}, err
	}
	format := dependency.ExportCSV
	if q.Format != "" {
		format = dependency.ExportFormat(q.Format)
	}
	data, eerr := s.exporter.Encode(format, report.Denormalize(entity.Table{Reports: v}))
	if eerr != nil {
		log.Errorf("Failed to export %d reports as %s: %v", len(v), format, eerr)
		return vo.ExportFile{}, NewSvcInternalError(eerr)
	}
	file := vo.ExportFile{
		Name: fmt.Sprintf("notulensi_kerusakan_%s.%s", s.now().Format("20060102"), format),
		Data: data,
	}
	switch format {
	case dependency.ExportXLSX:
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		file.ContentType = "text/csv; charset=utf-8"
	}
	return file, nil
}

func (s *reportService) Create(ctx context.Context, req *vo.ReportCreateReq) (int64, core.ServiceError) {
	f, err := toFields(req)
	if err != nil {
		return 0, fromDomainError(err)
	}
	var id int64
	serr := s.mutate(ctx, dependency.ActionInsert, func(t entity.Table) (entity.Table, entity.FaultReport, error) {
		next, newID, err := report.Insert(t, f)
		if err != nil {
			return t, entity.FaultReport{}, err
		}
		id = newID
		r, _, _ := next.Find(newID)
		return next, r, nil
	})
	return id, serr
}

func (s *reportService) Update(ctx context.Context, id int64, req *vo.ReportUpdateReq) core.ServiceError {
	p, err := toPatch(req)
	if err != nil {
		return fromDomainError(err)
	}
	return s.mutate(ctx, dependency.ActionUpdate, func(t entity.Table) (entity.Table, entity.FaultReport, error) {
		next, err := report.Update(t, id, p)
		if err != nil {
			return t, entity.FaultReport{}, err
		}
		r, _, _ := next.Find(id)
		return next, r, nil
	})
}

func (s *reportService) Delete(ctx context.Context, id int64) core.ServiceError {
	return s.mutate(ctx, dependency.ActionDelete, func(t entity.Table) (entity.Table, entity.FaultReport, error) {
		r, err := report.Lookup(t, id)
		if err != nil {
			return t, r, err
		}
		next, err := report.Delete(t, id)
		return next, r, err
	})
}

// mutate 串行执行一次变更：读全表、应用、写 ID 高水位与全表、替换快照。
// 任一步失败时快照和存储中的报告都保持原样
func (s *reportService) mutate(ctx context.Context, action dependency.ChangeAction,
	apply func(entity.Table) (entity.Table, entity.FaultReport, error)) core.ServiceError {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t, stored, serr := s.fetch(ctx)
	if serr != nil {
		return serr
	}
	next, r, err := apply(t)
	if err != nil {
		log.Warnf("Rejected %s of report: %v", action, err)
		return fromDomainError(err)
	}
	// 高水位先于数据落盘，中途失败最多留下未使用的 ID
	if next.NextID > stored {
		if rerr := s.store.PersistNextID(ctx, next.NextID); rerr != nil {
			return s.storeError(action, rerr)
		}
	}
	if rerr := s.store.PersistAll(ctx, report.Denormalize(next)); rerr != nil {
		return s.storeError(action, rerr)
	}

	old, _, _ := s.current()
	s.swap(next)
	s.invalidate(ctx, old.Generation)
	log.Infow("report changed", "action", action, "id", r.ID, "generation", next.Generation, "rows", next.Len())
	s.publish(ctx, action, r, next.Generation)
	return nil
}

func (s *reportService) publish(ctx context.Context, action dependency.ChangeAction, r entity.FaultReport, gen uint64) {
	if s.events == nil {
		return
	}
	event := dependency.ReportChanged{
		Action:     action,
		ReportID:   r.ID,
		Vessel:     r.Vessel,
		Generation: gen,
		Time:       s.now().UTC(),
	}
	if err := s.events.PublishReportChanged(ctx, event); err != nil {
		log.Errorf("Failed to publish %s event for report %d: %v", action, r.ID, err)
	}
}

func (s *reportService) Health(ctx context.Context) vo.HealthResp {
	t, loaded, lastErr := s.current()
	resp := vo.HealthResp{
		Status:     "ok",
		Store:      s.store.Kind(),
		Rows:       t.Len(),
		Generation: t.Generation,
		Degraded:   lastErr != nil,
	}
	if lastErr != nil {
		resp.Status = "degraded"
		resp.LastError = lastErr.Error()
	}
	if !loaded {
		resp.Status = "unavailable"
	}
	return resp
}
