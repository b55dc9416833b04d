package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/infrastructure/db"
	migration "devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/migrations/0.1.0"
	"github.com/xuri/excelize/v2"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRows() []entity.RawRow {
	return []entity.RawRow{
		{
			"ID": "0", "Day": "01/03/2024", "Vessel": "KCL 1", "Permasalahan": "pump leak, stbd",
			"Penyelesaian": "", "Unit": "ENGINE", "Issued Date": "01/03/2024", "Closed Date": "",
			"Keterangan": "line1\nline2", "Status": "OPEN",
		},
		{
			"ID": "5", "Day": "31/02/2024", "Vessel": "ABC", "Permasalahan": "radar",
			"Penyelesaian": "replaced", "Unit": "BRIDGE", "Issued Date": "02/03/2024", "Closed Date": "05/03/2024",
			"Keterangan": "", "Status": "CLOSED",
		},
	}
}

func testStoreRoundTrip(store dependency.RecordStore) {
	ctx := context.Background()

	So(store.PersistAll(ctx, sampleRows()), ShouldBeNil)
	rows, err := store.LoadAll(ctx)
	So(err, ShouldBeNil)
	So(rows, ShouldResemble, sampleRows())

	Convey("覆盖写入", func() {
		So(store.PersistAll(ctx, sampleRows()[1:]), ShouldBeNil)
		rows, err := store.LoadAll(ctx)
		So(err, ShouldBeNil)
		So(len(rows), ShouldEqual, 1)
		So(rows[0]["ID"], ShouldEqual, "5")
	})

	Convey("写入空表", func() {
		So(store.PersistAll(ctx, nil), ShouldBeNil)
		rows, err := store.LoadAll(ctx)
		So(err, ShouldBeNil)
		So(len(rows), ShouldEqual, 0)
	})
}

func testNextIDRoundTrip(store dependency.RecordStore) {
	ctx := context.Background()

	next, err := store.LoadNextID(ctx)
	So(err, ShouldBeNil)
	So(next, ShouldEqual, 0)

	So(store.PersistNextID(ctx, 7), ShouldBeNil)
	So(store.PersistNextID(ctx, 12), ShouldBeNil)
	next, err = store.LoadNextID(ctx)
	So(err, ShouldBeNil)
	So(next, ShouldEqual, 12)
}

func TestCSVStore(t *testing.T) {
	Convey("TestCSVStore", t, func() {
		dir := t.TempDir()

		Convey("读写往返", func() {
			testStoreRoundTrip(NewCSVStore(filepath.Join(dir, "data", "notulensi.csv")))
		})

		Convey("ID 高水位写入旁路文件", func() {
			path := filepath.Join(dir, "notulensi.csv")
			testNextIDRoundTrip(NewCSVStore(path))

			b, err := os.ReadFile(path + ".seq")
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "12\n")
		})

		Convey("旁路文件内容损坏", func() {
			path := filepath.Join(dir, "bad.csv")
			So(os.WriteFile(path+".seq", []byte("abc"), 0o644), ShouldBeNil)

			_, err := NewCSVStore(path).LoadNextID(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Type(), ShouldEqual, "FileError")
		})

		Convey("文件不存在视为空", func() {
			rows, err := NewCSVStore(filepath.Join(dir, "none.csv")).LoadAll(context.Background())
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 0)
		})

		Convey("旧文件没有 ID 列，列顺序不同", func() {
			path := filepath.Join(dir, "legacy.csv")
			content := "Vessel,Day,Status,Permasalahan\nkcl 1,1/3/2024,open,leak\n,,,\n"
			So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)

			rows, err := NewCSVStore(path).LoadAll(context.Background())
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 1)
			So(rows[0]["ID"], ShouldEqual, "")
			So(rows[0]["Vessel"], ShouldEqual, "kcl 1")
			So(rows[0]["Day"], ShouldEqual, "1/3/2024")
			So(rows[0]["Keterangan"], ShouldEqual, "")
		})

		Convey("格式错误", func() {
			path := filepath.Join(dir, "broken.csv")
			So(os.WriteFile(path, []byte("ID,Vessel\n\"unterminated,x\n"), 0o644), ShouldBeNil)

			_, err := NewCSVStore(path).LoadAll(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Type(), ShouldEqual, "FileError")
		})
	})
}

func TestXLSXStore(t *testing.T) {
	Convey("TestXLSXStore", t, func() {
		dir := t.TempDir()

		Convey("读写往返", func() {
			testStoreRoundTrip(NewXLSXStore(filepath.Join(dir, "notulensi.xlsx"), "Notulensi"))
		})

		Convey("ID 高水位", func() {
			testNextIDRoundTrip(NewXLSXStore(filepath.Join(dir, "seq.xlsx"), "Notulensi"))
		})

		Convey("默认工作表", func() {
			path := filepath.Join(dir, "default.xlsx")
			So(NewXLSXStore(path, "").PersistAll(context.Background(), sampleRows()), ShouldBeNil)

			f, err := excelize.OpenFile(path)
			So(err, ShouldBeNil)
			defer f.Close()
			v, _ := f.GetCellValue("Sheet1", "C2")
			So(v, ShouldEqual, "KCL 1")

			rows, rerr := NewXLSXStore(path, "").LoadAll(context.Background())
			So(rerr, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
		})

		Convey("工作表不存在", func() {
			path := filepath.Join(dir, "other.xlsx")
			So(NewXLSXStore(path, "A").PersistAll(context.Background(), sampleRows()), ShouldBeNil)

			_, err := NewXLSXStore(path, "B").LoadAll(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestReportRepo(t *testing.T) {
	Convey("TestReportRepo", t, func() {
		conn, err := db.NewSqliteDB(":memory:")
		So(err, ShouldBeNil)
		defer conn.Close()
		So(migration.CreateTable(conn, db.DriverSqlite), ShouldBeNil)

		Convey("读写往返并保持行序", func() {
			testStoreRoundTrip(NewReportRepo(conn))
		})

		Convey("ID 高水位保存在元数据表", func() {
			testNextIDRoundTrip(NewReportRepo(conn))

			var n int
			So(conn.QueryRow("SELECT COUNT(*) FROM t_fault_report_meta").Scan(&n), ShouldBeNil)
			So(n, ShouldEqual, 1)
		})

		Convey("非法 ID 时回滚", func() {
			store := NewReportRepo(conn)
			ctx := context.Background()
			So(store.PersistAll(ctx, sampleRows()), ShouldBeNil)

			bad := sampleRows()
			bad[0]["ID"] = "x"
			rerr := store.PersistAll(ctx, bad)
			So(rerr, ShouldNotBeNil)
			So(rerr.Type(), ShouldEqual, "ExecuteSqlError")

			rows, _ := store.LoadAll(ctx)
			So(len(rows), ShouldEqual, 2)
		})
	})
}

func TestNewRecordStore(t *testing.T) {
	Convey("TestNewRecordStore", t, func() {
		old := config.Get()
		defer config.Set(old)

		Convey("csv", func() {
			config.Set(&config.GlobalCfg{Store: config.StoreCfg{Type: config.StoreCSV, Path: "x.csv"}})
			s, err := NewRecordStore(nil)
			So(err, ShouldBeNil)
			So(s.Kind(), ShouldEqual, "csv")
		})

		Convey("xlsx", func() {
			config.Set(&config.GlobalCfg{Store: config.StoreCfg{Type: config.StoreXLSX, Path: "x.xlsx"}})
			s, err := NewRecordStore(nil)
			So(err, ShouldBeNil)
			So(s.Kind(), ShouldEqual, "xlsx")
		})

		Convey("数据库存储缺少连接", func() {
			config.Set(&config.GlobalCfg{Store: config.StoreCfg{Type: config.StoreMysql}})
			_, err := NewRecordStore(nil)
			So(err, ShouldNotBeNil)
		})

		Convey("未知类型", func() {
			config.Set(&config.GlobalCfg{Store: config.StoreCfg{Type: "gsheet"}})
			_, err := NewRecordStore(nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestExporter(t *testing.T) {
	Convey("TestExporter", t, func() {
		e := &exporter{sheet: "Notulensi"}

		Convey("csv 带表头", func() {
			b, err := e.Encode(dependency.ExportCSV, sampleRows())
			So(err, ShouldBeNil)
			So(string(b), ShouldStartWith, "ID,Day,Vessel,Permasalahan,Penyelesaian,Unit,Issued Date,Closed Date,Keterangan,Status\n")
			So(string(b), ShouldContainSubstring, `"pump leak, stbd"`)
		})

		Convey("xlsx", func() {
			b, err := e.Encode(dependency.ExportXLSX, sampleRows())
			So(err, ShouldBeNil)
			So(len(b), ShouldBeGreaterThan, 0)
		})

		Convey("不支持的格式", func() {
			_, err := e.Encode("pdf", nil)
			So(err, ShouldNotBeNil)
		})
	})
}
