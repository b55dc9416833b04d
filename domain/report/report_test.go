package report

import (
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/entity"
)

func date(y int, m time.Month, d int) entity.Date {
	return entity.NewDate(y, m, d)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleTable 三条记录，覆盖开放、已关闭、未知状态与无效日期
func sampleTable() entity.Table {
	return entity.Table{
		Reports: []entity.FaultReport{
			{
				ID: 0, Vessel: "KCL 1", Unit: "ENGINE", Problem: "pump leak",
				OccurredDate: date(2024, time.March, 1), IssuedDate: date(2024, time.March, 1),
				Status: entity.StatusOpen,
			},
			{
				ID: 1, Vessel: "KCL 1", Unit: "DECK", Problem: "winch",
				OccurredDate: date(2023, time.June, 10), IssuedDate: date(2023, time.June, 10),
				ClosedDate: date(2023, time.June, 14), Status: entity.StatusClosed,
			},
			{
				ID: 2, Vessel: "ABC", Unit: "ENGINE", Problem: "radar",
				OccurredDate: entity.ParseDate("31/02/2024"), IssuedDate: date(2024, time.May, 2),
				Status: entity.Status("PENDING"),
			},
		},
		NextID: 3,
	}
}
