package dependency

import (
	"context"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

//go:generate mockgen -source ./record_store.go -destination ../../mock/dependency/mock_record_store.go -package mock

// RecordStore 报告的后端存储，只负责整表读写，不包含业务逻辑
type RecordStore interface {
	// LoadAll 按存储顺序返回全部原始行
	LoadAll(ctx context.Context) ([]entity.RawRow, core.RepoError)
	// PersistAll 用 rows 整体替换存储内容
	PersistAll(ctx context.Context, rows []entity.RawRow) core.RepoError
	// LoadNextID 返回保存的 ID 高水位，从未保存过时为 0
	LoadNextID(ctx context.Context) (int64, core.RepoError)
	// PersistNextID 保存 ID 高水位，删除最大 ID 并重启后该 ID 也不会被复用
	PersistNextID(ctx context.Context, next int64) core.RepoError
	// Kind 存储类型，用于日志和健康检查
	Kind() string
}
