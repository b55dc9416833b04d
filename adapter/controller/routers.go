package controller

import (
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"github.com/gin-gonic/gin"
)

type HandlerRoute struct {
	rc   ReportController
	auth service.AuthVerifyService
}

func (r *HandlerRoute) SetRouter(app *gin.Engine) {
	app.GET("/health", r.rc.Health)

	group := app.Group("/api/ship_fault_report/v1/", BasicAuth(r.auth))
	group.GET("reports", r.rc.List)
	group.POST("reports", r.rc.Create)
	group.GET("reports/:id", r.rc.Get)
	group.PUT("reports/:id", r.rc.Update)
	group.DELETE("reports/:id", r.rc.Delete)

	// 聚合统计
	group.GET("reports/summary", r.rc.Summary)
	group.GET("reports/groups", r.rc.Groups)
	group.GET("reports/reliability", r.rc.Reliability)
	group.GET("reports/trend", r.rc.Trend)
	group.GET("reports/top", r.rc.Top)
	group.GET("reports/open/oldest", r.rc.OldestOpen)

	group.GET("reports/export", r.rc.Export)
	group.POST("reports/reload", r.rc.Reload)
}
