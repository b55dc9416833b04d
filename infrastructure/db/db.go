package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	DriverMysql  = "mysql"
	DriverSqlite = "sqlite3"
)

var (
	dbOnce sync.Once
	db     *sql.DB
	dbErr  error
)

// NewDBAccess 按 store.type 打开数据库，进程内只打开一次。文件存储时返回 nil
func NewDBAccess() (*sql.DB, error) {
	dbOnce.Do(func() {
		cfg := config.Get()
		switch cfg.Store.Type {
		case config.StoreMysql:
			db, dbErr = NewMysqlDB(cfg.Mysql)
		case config.StoreSqlite:
			db, dbErr = NewSqliteDB(cfg.Sqlite.Path)
		}
	})
	return db, dbErr
}

func NewMysqlDB(conf config.MysqlCfg) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=false&loc=Local",
		conf.Username, conf.Password, conf.Host, conf.Port, conf.Database)
	// 打开连接失败
	conn, err := sql.Open(DriverMysql, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "new db err:")
	}
	if err := conn.Ping(); err != nil {
		return nil, errors.Wrapf(err, "db ping err")
	}
	// 最大连接数
	conn.SetMaxOpenConns(20)
	// 闲置连接数
	conn.SetMaxIdleConns(5)
	// 最大连接周期
	conn.SetConnMaxLifetime(100 * time.Second)

	return conn, nil
}

// NewSqliteDB 单连接，避免 :memory: 库在多个连接间不可见
func NewSqliteDB(path string) (*sql.DB, error) {
	conn, err := sql.Open(DriverSqlite, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "sqlite ping err")
	}
	return conn, nil
}

// ConnectMysqlServer 不指定库的连接，仅用于建库
func ConnectMysqlServer(conf config.MysqlCfg) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/", conf.Username, conf.Password, conf.Host, conf.Port)
	conn, err := sql.Open(DriverMysql, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "new db err:")
	}
	if err := conn.Ping(); err != nil {
		return nil, errors.Wrapf(err, "db ping err")
	}
	return conn, nil
}
