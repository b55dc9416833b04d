package controller

const ModuleName = "ShipFaultReport"

const (
	ShipFaultReport_InternalError_Error          = ModuleName + ".InternalError.InternalError"
	ShipFaultReport_InternalError_StoreError     = ModuleName + ".InternalError.StoreError"
	ShipFaultReport_BadRequest_InvalidParameter  = ModuleName + ".BadRequest.InvalidParameter"
	ShipFaultReport_BadRequest_ValidationFailed  = ModuleName + ".BadRequest.ValidationFailed"
	ShipFaultReport_InvalidParameter_FieldFormat = ModuleName + ".InvalidParameter.%sInvalidParameter"
	ShipFaultReport_Unauthorized                 = ModuleName + ".Unauthorized.Unauthorized"
	ShipFaultReport_NotFound_Data                = ModuleName + ".NotFound.Data"
	ShipFaultReport_ServiceUnavailable           = ModuleName + ".ServiceUnavailable.StoreUnavailable"
)

// 错误码的中文说明，随错误一起返回
var errorDescriptions = map[string]string{
	ShipFaultReport_InternalError_Error:         "服务内部错误",
	ShipFaultReport_InternalError_StoreError:    "报告存储读写失败",
	ShipFaultReport_BadRequest_InvalidParameter: "请求参数错误",
	ShipFaultReport_BadRequest_ValidationFailed: "报告内容校验失败",
	ShipFaultReport_Unauthorized:                "用户名或密码错误",
	ShipFaultReport_NotFound_Data:               "报告不存在",
	ShipFaultReport_ServiceUnavailable:          "报告数据尚未加载",
}
