package service

import (
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/report"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewReportService, NewAuthVerifyService)

func NewReportService(store dependency.RecordStore, cache dependency.Cache, events dependency.EventPublisher,
	exporter dependency.Exporter) ReportService {
	cfg := config.Get().Report
	policy := report.ResolutionPolicy(cfg.ResolutionPolicy)
	if !policy.Valid() {
		log.Warnf("Unknown resolution policy %q, use %s", cfg.ResolutionPolicy, report.ResolutionExclusive)
		policy = report.ResolutionExclusive
	}
	return newReportService(store, cache, events, exporter, ReportOptions{
		Policy:          policy,
		CacheTTL:        time.Duration(cfg.CacheTTL) * time.Second,
		OldestOpenLimit: cfg.OldestOpenLimit,
	})
}

func NewAuthVerifyService() AuthVerifyService {
	return &authVerifyService{auth: func() config.AuthCfg {
		if cfg := config.Get(); cfg != nil {
			return cfg.Auth
		}
		return config.AuthCfg{}
	}}
}
