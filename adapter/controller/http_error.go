package controller

import (
	"fmt"
	"net/http"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	HTTPError = map[string]ErrorInfo{
		// 500
		service.ErrTypeInternal: {
			httpCode:  http.StatusInternalServerError,
			errorCode: ShipFaultReport_InternalError_Error,
		},
		service.ErrTypeStore: {
			httpCode:  http.StatusInternalServerError,
			errorCode: ShipFaultReport_InternalError_StoreError,
		},
		// 400
		service.ErrTypeValidation: {
			httpCode:  http.StatusBadRequest,
			errorCode: ShipFaultReport_BadRequest_ValidationFailed,
		},
		service.ErrTypeInvalidParameter: {
			httpCode:  http.StatusBadRequest,
			errorCode: ShipFaultReport_BadRequest_InvalidParameter,
		},
		"ValidateParamError": {
			httpCode:  http.StatusBadRequest,
			errorCode: ShipFaultReport_InvalidParameter_FieldFormat,
		},
		// 401
		service.ErrTypeUnauthorized: {
			httpCode:  http.StatusUnauthorized,
			errorCode: ShipFaultReport_Unauthorized,
		},
		// 404
		service.ErrTypeNotFound: {
			httpCode:  http.StatusNotFound,
			errorCode: ShipFaultReport_NotFound_Data,
		},
	}
	InvalidParameter = ErrorInfo{
		httpCode:  http.StatusBadRequest,
		errorCode: ShipFaultReport_BadRequest_InvalidParameter,
	}
)

type ErrorInfo struct {
	httpCode  int
	errorCode string
}

// RestHTTPError 接口返回的错误体
type RestHTTPError struct {
	HTTPCode     int    `json:"-"`
	ErrorCode    string `json:"code"`
	Description  string `json:"description"`
	ErrorDetails string `json:"detail,omitempty"`
}

func (e *RestHTTPError) WithErrorDetails(detail string) *RestHTTPError {
	e.ErrorDetails = detail
	return e
}

func NewRestHTTPError(info ErrorInfo) *RestHTTPError {
	desc, ok := errorDescriptions[info.errorCode]
	if !ok {
		desc = errorDescriptions[ShipFaultReport_BadRequest_InvalidParameter]
	}
	return &RestHTTPError{
		HTTPCode:    info.httpCode,
		ErrorCode:   info.errorCode,
		Description: desc,
	}
}

// HandleValidateError 取第一个校验失败的字段生成错误码
func HandleValidateError(err error) *RestHTTPError {
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			errInfo := HTTPError["ValidateParamError"]
			errInfo.errorCode = fmt.Sprintf(errInfo.errorCode, e.StructField())
			return NewRestHTTPError(errInfo).WithErrorDetails(fmt.Sprintf("%s failed on %s", e.Namespace(), e.Tag()))
		}
	}
	return NewRestHTTPError(InvalidParameter).WithErrorDetails(err.Error())
}

func HandServiceError(err core.ServiceError) *RestHTTPError {
	info, ok := HTTPError[err.Type()]
	if !ok {
		info = HTTPError[service.ErrTypeInternal]
	}
	httpErr := NewRestHTTPError(info)
	// 500 不向调用方暴露内部细节
	if info.httpCode < http.StatusInternalServerError {
		httpErr.WithErrorDetails(err.Detail())
	}
	return httpErr
}

func ReplyError(c *gin.Context, err *RestHTTPError) {
	c.AbortWithStatusJSON(err.HTTPCode, err)
}

func ReplyOK(c *gin.Context, statusCode int, body interface{}) {
	if body == nil {
		c.Status(statusCode)
		return
	}
	c.JSON(statusCode, body)
}
