package controller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/adapter/repository"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/vo"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/infrastructure/cache"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"
)

func newTestEngine(t *testing.T, auth config.AuthCfg) *gin.Engine {
	config.Set(&config.GlobalCfg{
		Auth:   auth,
		Store:  config.StoreCfg{Type: config.StoreCSV, Sheet: "Sheet1"},
		Report: config.ReportCfg{ResolutionPolicy: "exclusive", CacheTTL: 60, OldestOpenLimit: 15},
	})
	store := repository.NewCSVStore(filepath.Join(t.TempDir(), "notulensi.csv"))
	svc := service.NewReportService(store, cache.NewMemoryCache(32, time.Minute), nil, repository.NewExporter())

	va, err := NewValidator()
	if err != nil {
		t.Fatal(err)
	}
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	route := NewHandlerRoute(NewReportController(va, svc), service.NewAuthVerifyService())
	route.SetRouter(engine)
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const apiPrefix = "/api/ship_fault_report/v1/"

func TestReportController(t *testing.T) {
	Convey("TestReportController", t, func() {
		old := config.Get()
		defer config.Set(old)
		engine := newTestEngine(t, config.AuthCfg{})

		w := doRequest(engine, http.MethodPost, apiPrefix+"reports",
			`{"vessel":"kcl 1","unit":"engine","problem":"pump leak","occurred_date":"1/3/2024"}`)
		So(w.Code, ShouldEqual, http.StatusCreated)
		created := vo.CreateResp{}
		So(sonic.Unmarshal(w.Body.Bytes(), &created), ShouldBeNil)
		So(created.ID, ShouldEqual, 0)

		Convey("按 ID 查询", func() {
			w := doRequest(engine, http.MethodGet, apiPrefix+"reports/0", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			got := vo.ReportResp{}
			So(sonic.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got.Vessel, ShouldEqual, "KCL 1")
			So(got.OccurredDate, ShouldEqual, "01/03/2024")
			So(got.IssuedDate, ShouldEqual, "01/03/2024")
		})

		Convey("非法 ID 与不存在的 ID", func() {
			w := doRequest(engine, http.MethodGet, apiPrefix+"reports/abc", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w = doRequest(engine, http.MethodGet, apiPrefix+"reports/9", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, ShipFaultReport_NotFound_Data)
		})

		Convey("新建时日期格式错误", func() {
			w := doRequest(engine, http.MethodPost, apiPrefix+"reports",
				`{"vessel":"KCL 1","problem":"x","occurred_date":"2024-03-01"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "OccurredDateInvalidParameter")
		})

		Convey("CLOSED 缺少结束日期", func() {
			w := doRequest(engine, http.MethodPost, apiPrefix+"reports",
				`{"vessel":"KCL 1","problem":"x","occurred_date":"01/03/2024","status":"CLOSED"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, ShipFaultReport_BadRequest_ValidationFailed)
			So(w.Body.String(), ShouldContainSubstring, "closed_date")
		})

		Convey("关闭后汇总中出现 MTTR", func() {
			w := doRequest(engine, http.MethodPut, apiPrefix+"reports/0",
				`{"status":"CLOSED","closed_date":"05/03/2024"}`)
			So(w.Code, ShouldEqual, http.StatusNoContent)

			w = doRequest(engine, http.MethodGet, apiPrefix+"reports/summary?year=2024&vessel=All", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			summary := vo.SummaryResp{}
			So(sonic.Unmarshal(w.Body.Bytes(), &summary), ShouldBeNil)
			So(summary.Counts.Closed, ShouldEqual, 1)
			So(summary.MTTRDisplay, ShouldEqual, "4.00")
		})

		Convey("查询参数校验", func() {
			w := doRequest(engine, http.MethodGet, apiPrefix+"reports/reliability?sort=speed", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w = doRequest(engine, http.MethodGet, apiPrefix+"reports?year=twenty", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w = doRequest(engine, http.MethodGet, apiPrefix+"reports/reliability?group_by=unit&sort=count&order=desc", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			rel := vo.ReliabilityResp{}
			So(sonic.Unmarshal(w.Body.Bytes(), &rel), ShouldBeNil)
			So(rel.Items[0].Key, ShouldEqual, "ENGINE")
		})

		Convey("其余聚合接口", func() {
			for _, path := range []string{"reports/groups", "reports/trend", "reports/top?limit=5", "reports/open/oldest", "reports"} {
				w := doRequest(engine, http.MethodGet, apiPrefix+path, "")
				So(w.Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("导出 xlsx", func() {
			w := doRequest(engine, http.MethodGet, apiPrefix+"reports/export?format=xlsx", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "spreadsheetml")
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, ".xlsx")
			So(w.Body.Len(), ShouldBeGreaterThan, 0)
		})

		Convey("删除后重新加载", func() {
			w := doRequest(engine, http.MethodDelete, apiPrefix+"reports/0", "")
			So(w.Code, ShouldEqual, http.StatusNoContent)

			w = doRequest(engine, http.MethodPost, apiPrefix+"reports/reload", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			reload := vo.ReloadResp{}
			So(sonic.Unmarshal(w.Body.Bytes(), &reload), ShouldBeNil)
			So(reload.Rows, ShouldEqual, 0)

			w = doRequest(engine, http.MethodGet, apiPrefix+"reports/0", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("健康检查", func() {
			w := doRequest(engine, http.MethodGet, "/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"store":"csv"`)
		})
	})
}

func TestBasicAuth(t *testing.T) {
	Convey("TestBasicAuth", t, func() {
		old := config.Get()
		defer config.Set(old)
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		So(err, ShouldBeNil)
		engine := newTestEngine(t, config.AuthCfg{Username: "admin", PasswordHash: string(hash)})

		Convey("缺少凭据", func() {
			w := doRequest(engine, http.MethodGet, apiPrefix+"reports", "")
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(w.Header().Get("WWW-Authenticate"), ShouldStartWith, "Basic")
		})

		Convey("凭据错误", func() {
			req := httptest.NewRequest(http.MethodGet, apiPrefix+"reports", nil)
			req.SetBasicAuth("admin", "guess")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(w.Body.String(), ShouldContainSubstring, ShipFaultReport_Unauthorized)
		})

		Convey("凭据正确", func() {
			req := httptest.NewRequest(http.MethodGet, apiPrefix+"reports", nil)
			req.SetBasicAuth("admin", "s3cret")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("健康检查不需要认证", func() {
			w := doRequest(engine, http.MethodGet, "/health", "")
			So(w.Code, ShouldNotEqual, http.StatusUnauthorized)
		})
	})
}
