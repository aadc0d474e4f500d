package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func newTestBuilder() *GridBuilder {
	names := map[int64]string{1: "王伟", 2: "李娜"}
	return &GridBuilder{
		Registry: NewCapacityRegistry([]*domain.CapacityOverride{
			{Date: "2025-07-21", Capacity: 0}, // 周一，被管理员关闭
			{Date: "2025-07-23", Capacity: 2},
		}),
		Ledger: NewSlotLedger([]*domain.Reservation{
			{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
			{UserID: 1, Date: "2025-07-23", Slot: "13:30-14:00"},
			{UserID: 2, Date: "2025-07-23", Slot: "13:00-13:30"},
		}),
		NameOf: func(id int64) string { return names[id] },
		Viewer: 2,
	}
}

func findDay(t *testing.T, grid MonthGrid, day int) DayCell {
	t.Helper()
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.InMonth && cell.Day == day {
				return cell
			}
		}
	}
	t.Fatalf("月历中没有找到 %d 号", day)
	return DayCell{}
}

func TestBuildRosterHorizon(t *testing.T) {
	builder := newTestBuilder()

	// 7 月属于 2025 财年，渲染到 2026 年 3 月为止
	grids := builder.Build(ModeRoster, date(2025, time.July, 10))

	require.Len(t, grids, 9)
	assert.Equal(t, 2025, grids[0].Year)
	assert.Equal(t, 7, grids[0].Month)
	assert.Equal(t, 2026, grids[8].Year)
	assert.Equal(t, 3, grids[8].Month)
}

func TestBuildRosterHorizonCrossesFiscalYear(t *testing.T) {
	builder := newTestBuilder()

	// 3 月中旬：财年末就是本月，但预约窗口已经扩展到 4 月，取较晚者
	grids := builder.Build(ModeRoster, date(2025, time.March, 20))

	require.Len(t, grids, 2)
	assert.Equal(t, 3, grids[0].Month)
	assert.Equal(t, 4, grids[1].Month)
}

func TestBuildRequestHorizonClipped(t *testing.T) {
	builder := newTestBuilder()

	grids := builder.Build(ModeRequest, date(2025, time.July, 10))
	require.Len(t, grids, 1)

	grids = builder.Build(ModeRequest, date(2025, time.July, 15))
	require.Len(t, grids, 2)
	assert.Equal(t, 8, grids[1].Month)
}

func TestBuildFillerCells(t *testing.T) {
	builder := newTestBuilder()

	grids := builder.Build(ModeRoster, date(2025, time.July, 10))
	july := grids[0]

	// 2025-07-01 是周二，第一周的前两格是 6 月借来的占位格
	first := july.Weeks[0]
	require.Len(t, first, 7)
	assert.False(t, first[0].InMonth)
	assert.Equal(t, 29, first[0].Day)
	assert.False(t, first[1].InMonth)
	assert.Equal(t, 30, first[1].Day)
	assert.True(t, first[2].InMonth)
	assert.Equal(t, 1, first[2].Day)
	// 占位格只携带日期数字
	assert.Empty(t, first[0].Date)
	assert.Empty(t, first[0].Slots)

	// 7 月 31 日是周四，最后一周用 8 月的日期补齐
	last := july.Weeks[len(july.Weeks)-1]
	require.Len(t, last, 7)
	assert.False(t, last[6].InMonth)
	assert.Equal(t, 2, last[6].Day)
}

func TestBuildRosterGroups(t *testing.T) {
	builder := newTestBuilder()

	grids := builder.Build(ModeRoster, date(2025, time.July, 10))
	cell := findDay(t, grids[0], 23)

	require.Len(t, cell.Groups, 2)
	assert.Equal(t, "13:00-14:00", cell.Groups[0].Range)
	assert.Equal(t, []string{"王伟"}, cell.Groups[0].Names)
	assert.Equal(t, "13:00-13:30", cell.Groups[1].Range)
	assert.Equal(t, []string{"李娜"}, cell.Groups[1].Names)
}

func TestBuildCapacityMode(t *testing.T) {
	builder := newTestBuilder()

	grids := builder.Build(ModeCapacity, date(2025, time.July, 10))

	assert.Equal(t, 2, findDay(t, grids[0], 23).Capacity) // 覆盖值
	assert.Equal(t, 0, findDay(t, grids[0], 21).Capacity) // 覆盖值
	assert.Equal(t, 3, findDay(t, grids[0], 22).Capacity) // 周二默认
	assert.Equal(t, 0, findDay(t, grids[0], 27).Capacity) // 周日默认
	assert.Empty(t, findDay(t, grids[0], 23).Slots)       // 容量模式没有预约控件
}

func TestBuildRequestMode(t *testing.T) {
	builder := newTestBuilder()

	grids := builder.Build(ModeRequest, date(2025, time.July, 10))
	july := grids[0]

	// 过去的日期不可交互
	past := findDay(t, july, 5)
	assert.False(t, past.Requestable)
	assert.Empty(t, past.Slots)

	// 容量为 0 的日期没有任何操作控件
	closed := findDay(t, july, 21)
	assert.False(t, closed.Requestable)
	assert.Empty(t, closed.Slots)

	// 开放日期展示全部十个固定时段
	open := findDay(t, july, 23)
	require.True(t, open.Requestable)
	require.Len(t, open.Slots, 10)
	assert.Equal(t, "13:00-13:30", open.Slots[0].Slot)
	assert.Equal(t, "17:30-18:00", open.Slots[9].Slot)

	// 13:00-13:30 已有两人，容量 2，满员
	assert.Equal(t, 0, open.Slots[0].Remaining)
	assert.False(t, open.Slots[0].Requestable)
	// 13:30-14:00 只有王伟，但查看者李娜没有持有，可以预约
	assert.Equal(t, 1, open.Slots[1].Remaining)
	assert.True(t, open.Slots[1].Requestable)
	// 14:00-14:30 空闲
	assert.Equal(t, 2, open.Slots[2].Remaining)
	assert.True(t, open.Slots[2].Requestable)
}
