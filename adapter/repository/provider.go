package repository

import (
	"database/sql"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/infrastructure/db"
	"github.com/google/wire"
	"github.com/pkg/errors"
)

const (
	TableFaultReport     = "t_fault_report"
	TableFaultReportMeta = "t_fault_report_meta"
)

var ProviderSet = wire.NewSet(db.NewDBAccess, NewRecordStore, NewExporter)

// NewRecordStore 按 store.type 选择存储实现，数据库存储时 conn 不能为空
func NewRecordStore(conn *sql.DB) (dependency.RecordStore, error) {
	cfg := config.Get().Store
	switch cfg.Type {
	case config.StoreCSV, "":
		return NewCSVStore(cfg.Path), nil
	case config.StoreXLSX:
		return NewXLSXStore(cfg.Path, cfg.Sheet), nil
	case config.StoreMysql, config.StoreSqlite:
		if conn == nil {
			return nil, errors.Errorf("store type %s requires a database connection", cfg.Type)
		}
		return NewReportRepo(conn), nil
	default:
		return nil, errors.Errorf("unknown store type %q", cfg.Type)
	}
}

func NewCSVStore(path string) dependency.RecordStore {
	return &csvStore{path: path}
}

func NewXLSXStore(path, sheet string) dependency.RecordStore {
	return &xlsxStore{path: path, sheet: sheet}
}

func NewReportRepo(conn *sql.DB) dependency.RecordStore {
	return &reportRepo{
		Repo:          core.Repo{DB: conn},
		TableName:     TableFaultReport,
		MetaTableName: TableFaultReportMeta,
	}
}

func NewExporter() dependency.Exporter {
	sheet := defaultSheet
	if cfg := config.Get(); cfg != nil && cfg.Store.Sheet != "" {
		sheet = cfg.Store.Sheet
	}
	return &exporter{sheet: sheet}
}
