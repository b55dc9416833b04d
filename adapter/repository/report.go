package repository

import (
	"context"
	"database/sql"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// 列名与 t_fault_report 字段的对应关系，f_seq 保存行序
var columnFields = map[string]string{
	common.ColumnID:         "f_id",
	common.ColumnDay:        "f_day",
	common.ColumnVessel:     "f_vessel",
	common.ColumnProblem:    "f_problem",
	common.ColumnResolution: "f_resolution",
	common.ColumnUnit:       "f_unit",
	common.ColumnIssuedDate: "f_issued_date",
	common.ColumnClosedDate: "f_closed_date",
	common.ColumnRemarks:    "f_remarks",
	common.ColumnStatus:     "f_status",
}

const (
	insertBatch = 200

	metaKeyNextID = "next_id"
)

type reportRepo struct {
	core.Repo
	TableName     string
	MetaTableName string
}

func (repo *reportRepo) Kind() string {
	return "sql"
}

func fields() []string {
	out := make([]string, 0, len(common.Columns))
	for _, c := range common.Columns {
		out = append(out, columnFields[c])
	}
	return out
}

// LoadAll 按 f_seq 返回全部行
func (repo *reportRepo) LoadAll(ctx context.Context) ([]entity.RawRow, core.RepoError) {
	sqlStr, args, err := squirrel.Select(fields()...).From(repo.TableName).OrderBy("f_seq").ToSql()
	if err != nil {
		log.Errorf("Failed to build SQL for load reports: %v", err)
		return nil, dependency.NewRepoExecuteSqlError(err)
	}

	rows, err := repo.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Errorf("Failed to query reports: %v", err)
		return nil, dependency.NewRepoExecuteSqlError(err)
	}
	defer rows.Close()

	out := make([]entity.RawRow, 0)
	for rows.Next() {
		values := make([]interface{}, len(common.Columns))
		ptrs := make([]interface{}, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			log.Errorf("Failed to scan report row: %v", err)
			return nil, dependency.NewRepoExecuteSqlError(err)
		}
		row := make(entity.RawRow, len(common.Columns))
		for i, c := range common.Columns {
			// mysql 返回 []byte，sqlite 返回 string / int64
			row[c] = cast.ToString(values[i])
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		log.Errorf("Rows iteration error: %v", err)
		return nil, dependency.NewRepoExecuteSqlError(err)
	}
	return out, nil
}

// PersistAll 在一个事务内清空并重写整张表
func (repo *reportRepo) PersistAll(ctx context.Context, rows []entity.RawRow) core.RepoError {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return dependency.NewRepoExecuteSqlError(err)
	}
	if err := repo.rewrite(ctx, tx, rows); err != nil {
		_ = tx.Rollback()
		log.Errorf("Failed to persist reports: %v", err)
		return dependency.NewRepoExecuteSqlError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Errorf("Failed to commit reports: %v", err)
		return dependency.NewRepoExecuteSqlError(err)
	}
	return nil
}

func (repo *reportRepo) rewrite(ctx context.Context, tx *sql.Tx, rows []entity.RawRow) error {
	sqlStr, args, err := squirrel.Delete(repo.TableName).ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete")
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, "delete reports")
	}

	cols := append([]string{"f_seq"}, fields()...)
	for start := 0; start < len(rows); start += insertBatch {
		end := start + insertBatch
		if end > len(rows) {
			end = len(rows)
		}
		query := squirrel.Insert(repo.TableName).Columns(cols...)
		for i := start; i < end; i++ {
			values := []interface{}{i}
			for _, c := range common.Columns {
				if c == common.ColumnID {
					id, err := cast.ToInt64E(rows[i][c])
					if err != nil {
						return errors.Wrapf(err, "row %d has invalid id %q", i, rows[i][c])
					}
					values = append(values, id)
					continue
				}
				values = append(values, rows[i][c])
			}
			query = query.Values(values...)
		}
		sqlStr, args, err := query.ToSql()
		if err != nil {
			return errors.Wrap(err, "build insert")
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return errors.Wrap(err, "insert reports")
		}
	}
	return nil
}

// LoadNextID 读取 t_fault_report_meta 中的 ID 高水位，没有记录时为 0
func (repo *reportRepo) LoadNextID(ctx context.Context) (int64, core.RepoError) {
	sqlStr, args, err := squirrel.Select("f_value").From(repo.MetaTableName).
		Where(squirrel.Eq{"f_key": metaKeyNextID}).ToSql()
	if err != nil {
		log.Errorf("Failed to build SQL for load next id: %v", err)
		return 0, dependency.NewRepoExecuteSqlError(err)
	}

	var next int64
	err = repo.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Errorf("Failed to query next id: %v", err)
		return 0, dependency.NewRepoExecuteSqlError(err)
	}
	return next, nil
}

// PersistNextID 以删除再插入的方式覆盖 ID 高水位，兼容 mysql 与 sqlite
func (repo *reportRepo) PersistNextID(ctx context.Context, next int64) core.RepoError {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return dependency.NewRepoExecuteSqlError(err)
	}
	if err := repo.writeNextID(ctx, tx, next); err != nil {
		_ = tx.Rollback()
		log.Errorf("Failed to persist next id %d: %v", next, err)
		return dependency.NewRepoExecuteSqlError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Errorf("Failed to commit next id: %v", err)
		return dependency.NewRepoExecuteSqlError(err)
	}
	return nil
}

func (repo *reportRepo) writeNextID(ctx context.Context, tx *sql.Tx, next int64) error {
	sqlStr, args, err := squirrel.Delete(repo.MetaTableName).Where(squirrel.Eq{"f_key": metaKeyNextID}).ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete")
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, "delete next id")
	}
	sqlStr, args, err = squirrel.Insert(repo.MetaTableName).Columns("f_key", "f_value").
		Values(metaKeyNextID, next).ToSql()
	if err != nil {
		return errors.Wrap(err, "build insert")
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, "insert next id")
	}
	return nil
}
