package repository

import (
	"context"
	"os"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// xlsxStore 电子表格中的一个工作表，第一行为表头
type xlsxStore struct {
	path  string
	sheet string
}

func (s *xlsxStore) Kind() string {
	return "xlsx"
}

func (s *xlsxStore) LoadAll(_ context.Context) ([]entity.RawRow, core.RepoError) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		log.Warnf("xlsx store %s not found, starting with an empty dataset", s.path)
		return []entity.RawRow{}, nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		log.Errorf("Failed to open xlsx store %s: %v", s.path, err)
		return nil, dependency.NewRepoFileError(errors.Wrap(err, "open xlsx"))
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		log.Errorf("Failed to read sheet %s of %s: %v", sheet, s.path, err)
		return nil, dependency.NewRepoFileError(errors.Wrapf(err, "read sheet %s", sheet))
	}
	return parseRecords(records), nil
}

func (s *xlsxStore) PersistAll(_ context.Context, rows []entity.RawRow) core.RepoError {
	data, err := encodeXLSX(rows, s.sheet)
	if err != nil {
		return dependency.NewRepoInternalError(err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		log.Errorf("Failed to persist xlsx store %s: %v", s.path, err)
		return dependency.NewRepoFileError(err)
	}
	return nil
}

func (s *xlsxStore) LoadNextID(_ context.Context) (int64, core.RepoError) {
	next, err := readSeq(s.path)
	if err != nil {
		log.Errorf("Failed to load id sequence of xlsx store %s: %v", s.path, err)
		return 0, dependency.NewRepoFileError(err)
	}
	return next, nil
}

func (s *xlsxStore) PersistNextID(_ context.Context, next int64) core.RepoError {
	if err := writeSeq(s.path, next); err != nil {
		log.Errorf("Failed to persist id sequence of xlsx store %s: %v", s.path, err)
		return dependency.NewRepoFileError(err)
	}
	return nil
}
