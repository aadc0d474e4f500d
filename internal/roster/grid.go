package roster

import (
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

type Mode string

const (
	ModeRoster   Mode = "roster"   // 值班表：按人合并后的时段分组
	ModeCapacity Mode = "capacity" // 容量编辑：每天的实际容量
	ModeRequest  Mode = "request"  // 预约：每个时段的剩余名额
)

type SlotCell struct {
	Slot        string `json:"slot"`
	Remaining   int    `json:"remaining"`
	Requestable bool   `json:"requestable"`
}

// DayCell 日历中的一个格子。InMonth 为 false 表示为了补齐七列
// 而从相邻月份借来的占位格，只携带日期数字，没有任何交互内容。
type DayCell struct {
	Date        string       `json:"date,omitempty"`
	Day         int          `json:"day"`
	InMonth     bool         `json:"inMonth"`
	Capacity    int          `json:"capacity"`
	Requestable bool         `json:"requestable,omitempty"`
	Groups      []RangeGroup `json:"groups,omitempty"`
	Slots       []SlotCell   `json:"slots,omitempty"`
}

type MonthGrid struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Weeks [][]DayCell `json:"weeks"`
}

// GridBuilder 自身不持有任何状态，只是把容量、账本和当前时间
// 投影成可以直接渲染的月历结构
type GridBuilder struct {
	Registry *CapacityRegistry
	Ledger   *SlotLedger
	NameOf   func(int64) string
	Viewer   int64 // 预约模式下用于排除本人已持有的时段
}

// Build 从当前月开始逐月构建日历。值班表和容量编辑模式渲染到
// 财年末（3 月，4 月及之后的月份属于下一个财年）和预约窗口边界中较晚者；
// 预约模式只渲染到预约窗口的边界。
func (b *GridBuilder) Build(mode Mode, now time.Time) []MonthGrid {
	startIdx := monthIndex(now.Year(), now.Month())

	endIdx := requestHorizonIndex(now)
	if mode != ModeRequest {
		if fiscalIdx := fiscalYearEndIndex(now); fiscalIdx > endIdx {
			endIdx = fiscalIdx
		}
	}

	grids := make([]MonthGrid, 0, endIdx-startIdx+1)
	for idx := startIdx; idx <= endIdx; idx++ {
		grids = append(grids, b.buildMonth(idx/12, time.Month(idx%12+1), mode, now))
	}

	return grids
}

func (b *GridBuilder) buildMonth(year int, month time.Month, mode Mode, now time.Time) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]DayCell, 0, 42)

	// 月初之前用上个月的日期补齐到周日开头
	lead := int(first.Weekday())
	prevLastDay := first.AddDate(0, 0, -1).Day()
	for i := 0; i < lead; i++ {
		cells = append(cells, DayCell{Day: prevLastDay - lead + i + 1})
	}

	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, b.buildDay(year, month, day, mode, now))
	}

	// 月末之后用下个月的日期补齐到整周
	for day := 1; len(cells)%7 != 0; day++ {
		cells = append(cells, DayCell{Day: day})
	}

	weeks := make([][]DayCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	return MonthGrid{
		Year:  year,
		Month: int(month),
		Weeks: weeks,
	}
}

func (b *GridBuilder) buildDay(year int, month time.Month, day int, mode Mode, now time.Time) DayCell {
	date := domain.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))

	cell := DayCell{
		Date:     date,
		Day:      day,
		InMonth:  true,
		Capacity: b.Registry.EffectiveCapacity(date),
	}

	switch mode {
	case ModeRoster:
		cell.Groups = GroupReservations(b.Ledger.ReservationsFor(date), b.NameOf)
	case ModeRequest:
		// 窗口之外、过去的日期和容量为 0 的日期不渲染任何操作控件
		if !IsWithinRequestWindow(date, now) || cell.Capacity == 0 {
			break
		}
		cell.Requestable = true

		availability := &Availability{Registry: b.Registry, Ledger: b.Ledger}
		for _, slot := range domain.RequestableSlots() {
			cell.Slots = append(cell.Slots, SlotCell{
				Slot:        slot,
				Remaining:   availability.Remaining(date, slot),
				Requestable: availability.IsRequestable(date, slot, b.Viewer),
			})
		}
	}

	return cell
}

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// fiscalYearEndIndex 当前财年最后一个月（3 月）的序号
func fiscalYearEndIndex(now time.Time) int {
	fiscalYear := now.Year()
	if now.Month() >= time.April {
		fiscalYear++
	}
	return monthIndex(fiscalYear, time.March)
}

// requestHorizonIndex 预约窗口覆盖的最后一个月的序号，
// 15 号（含）之后窗口扩展到下个月
func requestHorizonIndex(now time.Time) int {
	idx := monthIndex(now.Year(), now.Month())
	if now.Day() >= 15 {
		idx++
	}
	return idx
}
