package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/adapter/repository"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/vo"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"
)

func TestPrintStats(t *testing.T) {
	Convey("TestPrintStats", t, func() {
		old := config.Get()
		defer config.Set(old)
		config.Set(&config.GlobalCfg{Report: config.ReportCfg{ResolutionPolicy: "exclusive"}})

		ctx := context.Background()
		store := repository.NewCSVStore(filepath.Join(t.TempDir(), "notulensi.csv"))
		So(store.PersistAll(ctx, []entity.RawRow{
			{common.ColumnID: "0", common.ColumnDay: "01/03/2024", common.ColumnVessel: "KCL 1", common.ColumnProblem: "pump",
				common.ColumnIssuedDate: "01/03/2024", common.ColumnStatus: "OPEN"},
			{common.ColumnID: "1", common.ColumnDay: "10/06/2023", common.ColumnVessel: "ABC", common.ColumnProblem: "winch",
				common.ColumnIssuedDate: "10/06/2023", common.ColumnClosedDate: "14/06/2023", common.ColumnStatus: "CLOSED"},
		}), ShouldBeNil)
		svc := service.NewReportService(store, nil, nil, nil)

		Convey("输出汇总与可靠性表", func() {
			var out bytes.Buffer
			err := printStats(ctx, &out, svc, vo.ReliabilityQuery{})
			So(err, ShouldBeNil)
			text := out.String()
			So(text, ShouldContainSubstring, "total 2")
			So(text, ShouldContainSubstring, "MTTR (exclusive) 4.00 days")
			So(text, ShouldContainSubstring, "KCL 1")
			So(text, ShouldContainSubstring, "ABC")
		})

		Convey("过滤后没有已关闭记录", func() {
			var out bytes.Buffer
			err := printStats(ctx, &out, svc, vo.ReliabilityQuery{GroupQuery: vo.GroupQuery{ReportQuery: vo.ReportQuery{Status: "OPEN"}}})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "MTTR (exclusive) N/A days")
		})

		Convey("非法年份", func() {
			var out bytes.Buffer
			err := printStats(ctx, &out, svc, vo.ReliabilityQuery{GroupQuery: vo.GroupQuery{ReportQuery: vo.ReportQuery{Year: "x"}}})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestHashPasswordCmd(t *testing.T) {
	Convey("TestHashPasswordCmd", t, func() {
		Convey("从参数读取密码", func() {
			cmd := hashPasswordCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"s3cret"})
			So(cmd.Execute(), ShouldBeNil)
			hash := strings.TrimSpace(out.String())
			So(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")), ShouldBeNil)
		})

		Convey("从标准输入读取密码", func() {
			cmd := hashPasswordCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetIn(strings.NewReader("from-stdin\n"))
			cmd.SetArgs([]string{})
			So(cmd.Execute(), ShouldBeNil)
			hash := strings.TrimSpace(out.String())
			So(bcrypt.CompareHashAndPassword([]byte(hash), []byte("from-stdin")), ShouldBeNil)
		})

		Convey("空密码", func() {
			cmd := hashPasswordCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetIn(strings.NewReader("\n"))
			cmd.SetArgs([]string{})
			So(cmd.Execute(), ShouldNotBeNil)
		})
	})
}
