package __1_0

import (
	"database/sql"
	"fmt"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/infrastructure/db"
	"github.com/pkg/errors"
)

const (
	TableFaultReport     = "t_fault_report"
	TableFaultReportMeta = "t_fault_report_meta"
)

// 日期按 DD/MM/YYYY 文本保存，无法解析的原始值也要能原样写回
const createMysqlTableSQL = `
CREATE TABLE IF NOT EXISTS t_fault_report (
    f_id BIGINT NOT NULL PRIMARY KEY,
    f_seq INT NOT NULL,
    f_day VARCHAR(64) NOT NULL DEFAULT '',
    f_vessel VARCHAR(255) NOT NULL DEFAULT '',
    f_problem TEXT NOT NULL,
    f_resolution TEXT NOT NULL,
    f_unit VARCHAR(255) NOT NULL DEFAULT '',
    f_issued_date VARCHAR(64) NOT NULL DEFAULT '',
    f_closed_date VARCHAR(64) NOT NULL DEFAULT '',
    f_remarks TEXT NOT NULL,
    f_status VARCHAR(32) NOT NULL DEFAULT 'OPEN',
    KEY idx_seq (f_seq)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin;
`

const createSqliteTableSQL = `
CREATE TABLE IF NOT EXISTS t_fault_report (
    f_id INTEGER NOT NULL PRIMARY KEY,
    f_seq INTEGER NOT NULL,
    f_day TEXT NOT NULL DEFAULT '',
    f_vessel TEXT NOT NULL DEFAULT '',
    f_problem TEXT NOT NULL DEFAULT '',
    f_resolution TEXT NOT NULL DEFAULT '',
    f_unit TEXT NOT NULL DEFAULT '',
    f_issued_date TEXT NOT NULL DEFAULT '',
    f_closed_date TEXT NOT NULL DEFAULT '',
    f_remarks TEXT NOT NULL DEFAULT '',
    f_status TEXT NOT NULL DEFAULT 'OPEN'
);
`

// 保存 ID 高水位等单值元数据
const createMysqlMetaTableSQL = `
CREATE TABLE IF NOT EXISTS t_fault_report_meta (
    f_key VARCHAR(64) NOT NULL PRIMARY KEY,
    f_value BIGINT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin;
`

const createSqliteMetaTableSQL = `
CREATE TABLE IF NOT EXISTS t_fault_report_meta (
    f_key TEXT NOT NULL PRIMARY KEY,
    f_value INTEGER NOT NULL DEFAULT 0
);
`

// InitDataBase 数据库存储时建库建表，文件存储时什么也不做
func InitDataBase() {
	cfg := config.Get()
	switch cfg.Store.Type {
	case config.StoreMysql:
		if err := initMysql(cfg.Mysql); err != nil {
			panic(fmt.Sprintf("init mysql failed: %v", err))
		}
	case config.StoreSqlite:
		conn, err := db.NewDBAccess()
		if err != nil {
			panic(fmt.Sprintf("open sqlite failed: %v", err))
		}
		if err := CreateTable(conn, db.DriverSqlite); err != nil {
			panic(fmt.Sprintf("init sqlite failed: %v", err))
		}
	}
}

func initMysql(conf config.MysqlCfg) error {
	server, err := db.ConnectMysqlServer(conf)
	if err != nil {
		return err
	}
	defer server.Close()

	// 1. 创建数据库（如果不存在）
	createDBSQL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;", conf.Database)
	if _, err = server.Exec(createDBSQL); err != nil {
		return errors.Wrapf(err, "create database %s", conf.Database)
	}
	log.Infof("database '%s' created or already exists", conf.Database)

	// 2. 创建表
	conn, err := db.NewDBAccess()
	if err != nil {
		return err
	}
	return CreateTable(conn, db.DriverMysql)
}

// CreateTable 创建 t_fault_report 与 t_fault_report_meta（如果不存在）
func CreateTable(conn *sql.DB, driver string) error {
	tables := []struct {
		name string
		ddl  string
	}{
		{TableFaultReport, createSqliteTableSQL},
		{TableFaultReportMeta, createSqliteMetaTableSQL},
	}
	if driver == db.DriverMysql {
		tables[0].ddl = createMysqlTableSQL
		tables[1].ddl = createMysqlMetaTableSQL
	}
	// mysql 驱动默认不支持一次执行多条语句
	for _, t := range tables {
		if _, err := conn.Exec(t.ddl); err != nil {
			return errors.Wrapf(err, "create table %s", t.name)
		}
		log.Infof("table '%s' created or already exists", t.name)
	}
	return nil
}
