package controller

import (
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/validate"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewValidator, NewReportController, NewHandlerRoute, NewRouterQuote)

// NewValidator 注册自定义校验标签
func NewValidator() (*validator.Validate, error) {
	va := validator.New()
	if err := validate.Register(va); err != nil {
		return nil, err
	}
	return va, nil
}

// NewHandlerRoute 返回报告服务的路由
func NewHandlerRoute(reportController ReportController, authVerifyService service.AuthVerifyService) core.HttpRouter {
	return &HandlerRoute{
		rc:   reportController,
		auth: authVerifyService,
	}
}

// NewRouterQuote 返回路由引用列表
func NewRouterQuote(handlerRoute core.HttpRouter) *core.RouterQuote {
	return &core.RouterQuote{Routes: []core.HttpRouter{
		handlerRoute,
	}}
}

func NewReportController(validate *validator.Validate, reportService service.ReportService) ReportController {
	return &reportController{
		reportService: reportService,
		validate:      validate,
	}
}
