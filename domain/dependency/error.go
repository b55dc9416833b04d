package dependency

import "devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"

type repoError struct {
	err     error
	ErrType string
}

func (e *repoError) GetError() error {
	return e.err
}

func (e *repoError) Type() string {
	return e.ErrType
}
func (e *repoError) Error() string {
	return e.err.Error()
}

func (e *repoError) Unwrap() error {
	return e.err
}

func NewRepoInternalError(err error) core.RepoError {
	return &repoError{
		err:     err,
		ErrType: "InternalError",
	}
}

func NewRepoExecuteSqlError(err error) core.RepoError {
	return &repoError{
		err:     err,
		ErrType: "ExecuteSqlError",
	}
}

// NewRepoFileError 文件/表格读写失败
func NewRepoFileError(err error) core.RepoError {
	return &repoError{
		err:     err,
		ErrType: "FileError",
	}
}
