package controller

import (
	"fmt"
	"net/http"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/vo"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

type ReportController interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Summary(c *gin.Context)
	Groups(c *gin.Context)
	Reliability(c *gin.Context)
	Trend(c *gin.Context)
	Top(c *gin.Context)
	OldestOpen(c *gin.Context)
	Export(c *gin.Context)
	Reload(c *gin.Context)
	Health(c *gin.Context)
}

type reportController struct {
	reportService service.ReportService
	validate      *validator.Validate
}

// bindQuery 绑定并校验查询参数，失败时已经写回错误
func (p *reportController) bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		ReplyError(c, NewRestHTTPError(InvalidParameter).WithErrorDetails(common.ErrorDetailBind+err.Error()))
		return false
	}
	if err := p.validate.Struct(req); err != nil {
		log.Errorf("report query validate err:%s", err.Error())
		ReplyError(c, HandleValidateError(err))
		return false
	}
	return true
}

func (p *reportController) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		ReplyError(c, NewRestHTTPError(InvalidParameter).WithErrorDetails(common.ErrorDetailBind+err.Error()))
		return false
	}
	if err := p.validate.Struct(req); err != nil {
		log.Errorf("report request validate err:%s", err.Error())
		ReplyError(c, HandleValidateError(err))
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := cast.ToInt64E(c.Param("id"))
	if err != nil || id < 0 {
		ReplyError(c, NewRestHTTPError(InvalidParameter).WithErrorDetails("id must be a non-negative integer"))
		return 0, false
	}
	return id, true
}

// List 按条件查询报告
func (p *reportController) List(c *gin.Context) {
	req := vo.ReportQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.List(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

func (p *reportController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := p.reportService.Get(c.Request.Context(), id)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

// Create 新建报告
func (p *reportController) Create(c *gin.Context) {
	req := vo.ReportCreateReq{}
	if !p.bindJSON(c, &req) {
		return
	}
	log.Debugf("create report from host:%s ,req:%+v", c.Request.Host, req)
	id, err := p.reportService.Create(c.Request.Context(), &req)
	if err != nil {
		log.Errorf("report create failed err:%s", err.Error())
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusCreated, vo.CreateResp{ID: id})
}

// Update 修改报告，未提供的字段保持不变
func (p *reportController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req := vo.ReportUpdateReq{}
	if !p.bindJSON(c, &req) {
		return
	}
	if err := p.reportService.Update(c.Request.Context(), id, &req); err != nil {
		log.Errorf("report %d update failed err:%s", id, err.Error())
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusNoContent, nil)
}

func (p *reportController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := p.reportService.Delete(c.Request.Context(), id); err != nil {
		log.Errorf("report %d delete failed err:%s", id, err.Error())
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusNoContent, nil)
}

func (p *reportController) Summary(c *gin.Context) {
	req := vo.ReportQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.Summary(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

// Groups 每个船舶/单元的状态卡片
func (p *reportController) Groups(c *gin.Context) {
	req := vo.GroupQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.Groups(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

// Reliability MTBF / MTTR 排名
func (p *reportController) Reliability(c *gin.Context) {
	req := vo.ReliabilityQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.Reliability(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

func (p *reportController) Trend(c *gin.Context) {
	req := vo.ReportQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.Trend(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

func (p *reportController) Top(c *gin.Context) {
	req := vo.TopQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.Top(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

func (p *reportController) OldestOpen(c *gin.Context) {
	req := vo.OldestOpenQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	result, err := p.reportService.OldestOpen(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

// Export 下载过滤后的数据，csv 或 xlsx
func (p *reportController) Export(c *gin.Context) {
	req := vo.ExportQuery{}
	if !p.bindQuery(c, &req) {
		return
	}
	file, err := p.reportService.Export(c.Request.Context(), req)
	if err != nil {
		ReplyError(c, HandServiceError(err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Reload 重新从存储加载
func (p *reportController) Reload(c *gin.Context) {
	result, err := p.reportService.Reload(c.Request.Context())
	if err != nil {
		log.Errorf("report reload failed err:%s", err.Error())
		ReplyError(c, HandServiceError(err))
		return
	}
	ReplyOK(c, http.StatusOK, result)
}

func (p *reportController) Health(c *gin.Context) {
	result := p.reportService.Health(c.Request.Context())
	code := http.StatusOK
	if result.Status == "unavailable" {
		code = http.StatusServiceUnavailable
	}
	ReplyOK(c, code, result)
}
