package report

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("fault report not found")
)

// ValidationError 变更请求不满足记录不变量，表保持不变
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError 按 ID 更新或删除时记录不存在
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fault report %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
