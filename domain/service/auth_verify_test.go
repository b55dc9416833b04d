package service

import (
	"context"
	"testing"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/report"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthVerify(t *testing.T) {
	Convey("TestAuthVerify", t, func() {
		ctx := context.Background()
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		So(err, ShouldBeNil)
		cfg := config.AuthCfg{Username: "admin", PasswordHash: string(hash)}
		svc := &authVerifyService{auth: func() config.AuthCfg { return cfg }}

		Convey("正确的账号密码", func() {
			So(svc.Enabled(), ShouldBeTrue)
			So(svc.BasicVerify(ctx, "admin", "s3cret"), ShouldBeNil)
		})

		Convey("密码错误", func() {
			err := svc.BasicVerify(ctx, "admin", "wrong")
			So(err, ShouldNotBeNil)
			So(err.Type(), ShouldEqual, ErrTypeUnauthorized)
		})

		Convey("用户名错误", func() {
			err := svc.BasicVerify(ctx, "root", "s3cret")
			So(err, ShouldNotBeNil)
			So(err.Type(), ShouldEqual, ErrTypeUnauthorized)
		})

		Convey("未配置用户名时不认证", func() {
			cfg = config.AuthCfg{}
			So(svc.Enabled(), ShouldBeFalse)
			So(svc.BasicVerify(ctx, "", ""), ShouldBeNil)
		})
	})
}

func TestHashPassword(t *testing.T) {
	Convey("TestHashPassword", t, func() {
		Convey("生成的哈希可以校验原密码", func() {
			hash, err := HashPassword("s3cret")
			So(err, ShouldBeNil)
			So(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")), ShouldBeNil)
		})

		Convey("空密码", func() {
			_, err := HashPassword("")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewReportService(t *testing.T) {
	Convey("TestNewReportService", t, func() {
		old := config.Get()
		defer config.Set(old)

		Convey("未知的处理时长口径回退为 exclusive", func() {
			config.Set(&config.GlobalCfg{Report: config.ReportCfg{ResolutionPolicy: "weekly", CacheTTL: 10}})
			s := NewReportService(&fakeStore{}, nil, nil, fakeExporter{}).(*reportService)
			So(s.opts.Policy, ShouldEqual, report.ResolutionExclusive)
			So(s.opts.OldestOpenLimit, ShouldEqual, 15)
			So(s.opts.CacheTTL.Seconds(), ShouldEqual, 10)
		})

		Convey("inclusive 口径", func() {
			config.Set(&config.GlobalCfg{Report: config.ReportCfg{ResolutionPolicy: "inclusive"}})
			s := NewReportService(&fakeStore{}, nil, nil, fakeExporter{}).(*reportService)
			So(s.opts.Policy, ShouldEqual, report.ResolutionInclusive)
		})
	})
}
