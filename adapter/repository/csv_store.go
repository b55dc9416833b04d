package repository

import (
	"context"
	"encoding/csv"
	"os"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"github.com/pkg/errors"
)

// csvStore 本地 CSV 文件，第一行为表头
type csvStore struct {
	path string
}

func (s *csvStore) Kind() string {
	return "csv"
}

// LoadAll 文件不存在时视为空数据集
func (s *csvStore) LoadAll(_ context.Context) ([]entity.RawRow, core.RepoError) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		log.Warnf("csv store %s not found, starting with an empty dataset", s.path)
		return []entity.RawRow{}, nil
	}
	if err != nil {
		log.Errorf("Failed to open csv store %s: %v", s.path, err)
		return nil, dependency.NewRepoFileError(errors.Wrap(err, "open csv"))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		log.Errorf("Failed to parse csv store %s: %v", s.path, err)
		return nil, dependency.NewRepoFileError(errors.Wrap(err, "parse csv"))
	}
	return parseRecords(records), nil
}

func (s *csvStore) PersistAll(_ context.Context, rows []entity.RawRow) core.RepoError {
	data, err := encodeCSV(rows)
	if err != nil {
		return dependency.NewRepoInternalError(err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		log.Errorf("Failed to persist csv store %s: %v", s.path, err)
		return dependency.NewRepoFileError(err)
	}
	return nil
}

func (s *csvStore) LoadNextID(_ context.Context) (int64, core.RepoError) {
	next, err := readSeq(s.path)
	if err != nil {
		log.Errorf("Failed to load id sequence of csv store %s: %v", s.path, err)
		return 0, dependency.NewRepoFileError(err)
	}
	return next, nil
}

func (s *csvStore) PersistNextID(_ context.Context, next int64) core.RepoError {
	if err := writeSeq(s.path, next); err != nil {
		log.Errorf("Failed to persist id sequence of csv store %s: %v", s.path, err)
		return dependency.NewRepoFileError(err)
	}
	return nil
}
