package service

import (
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/report"
	"github.com/pkg/errors"
)

const (
	ErrTypeInternal         = "InternalError"
	ErrTypeStore            = "StoreError"
	ErrTypeNotFound         = "NotFound"
	ErrTypeValidation       = "ValidationError"
	ErrTypeInvalidParameter = "InvalidParameter"
	ErrTypeUnauthorized     = "Unauthorized"
)

type serviceError struct {
	err     error
	ErrType string
}

func (e *serviceError) Error() string {
	if e.err != nil {
		return e.ErrType + ": " + e.err.Error()
	}
	return e.ErrType
}

func (e *serviceError) GetError() error {
	return e.err
}

func (e *serviceError) Type() string {
	return e.ErrType
}

func (e *serviceError) Detail() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *serviceError) Unwrap() error {
	return e.err
}

func NewSvcInternalError(err error) core.ServiceError {
	return &serviceError{
		err:     err,
		ErrType: ErrTypeInternal,
	}
}

// NewSvcStoreError 后端存储不可用或数据损坏，内存中的快照保持不变
func NewSvcStoreError(err error) core.ServiceError {
	return &serviceError{
		err:     err,
		ErrType: ErrTypeStore,
	}
}

func NewSvcNotFoundError(err error) core.ServiceError {
	return &serviceError{
		err:     err,
		ErrType: ErrTypeNotFound,
	}
}

func NewSvcValidationError(err error) core.ServiceError {
	return &serviceError{
		err:     err,
		ErrType: ErrTypeValidation,
	}
}

func NewSvcInvalidParameterError(err error) core.ServiceError {
	return &serviceError{
		err:     err,
		ErrType: ErrTypeInvalidParameter,
	}
}

func NewSvcUnauthorizedError(err error) core.ServiceError {
	return &serviceError{
		err:     err,
		ErrType: ErrTypeUnauthorized,
	}
}

// fromDomainError 将 report 包的错误转换为服务错误
func fromDomainError(err error) core.ServiceError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, report.ErrNotFound):
		return NewSvcNotFoundError(err)
	case errors.Is(err, report.ErrValidation):
		return NewSvcValidationError(err)
	default:
		return NewSvcInternalError(err)
	}
}
