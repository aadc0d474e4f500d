package roster

import (
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

// SlotLedger 是已有预约的内存视图，按日期索引。
// 账本本身不做任何去重和容量检查：同一个人对同一个时段的重复预约、
// 超过容量的预约都允许存在，是否允许新增是 Availability 的策略决定。
type SlotLedger struct {
	byDate map[string][]*domain.Reservation
}

func NewSlotLedger(reservations []*domain.Reservation) *SlotLedger {
	l := &SlotLedger{
		byDate: make(map[string][]*domain.Reservation),
	}
	for _, r := range reservations {
		l.Add(r)
	}
	return l
}

func (l *SlotLedger) Add(r *domain.Reservation) {
	l.byDate[r.Date] = append(l.byDate[r.Date], r)
}

// Remove 删除 (userID, date, slots) 匹配的所有记录，
// 一次调用可以删除多个时段，返回删除的数量
func (l *SlotLedger) Remove(userID int64, date string, slots []string) int {
	reservations, exists := l.byDate[date]
	if !exists {
		return 0
	}

	removed := 0
	kept := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.UserID == userID && containsSlot(slots, r.Slot) {
			removed++
			continue
		}
		kept = append(kept, r)
	}

	if len(kept) == 0 {
		delete(l.byDate, date)
	} else {
		l.byDate[date] = kept
	}

	return removed
}

// CountFor 返回某个日期某个时段已有的预约数量
func (l *SlotLedger) CountFor(date string, slot string) int {
	count := 0
	for _, r := range l.byDate[date] {
		if r.Slot == slot {
			count++
		}
	}
	return count
}

// ReservationsFor 返回某个日期的所有预约，无序
func (l *SlotLedger) ReservationsFor(date string) []*domain.Reservation {
	return l.byDate[date]
}

// HasReservation 判断某个人是否已经持有某个日期的某个时段
func (l *SlotLedger) HasReservation(userID int64, date string, slot string) bool {
	for _, r := range l.byDate[date] {
		if r.UserID == userID && r.Slot == slot {
			return true
		}
	}
	return false
}

// Clone 深拷贝，用途同 CapacityRegistry.Clone
func (l *SlotLedger) Clone() *SlotLedger {
	clone := &SlotLedger{
		byDate: make(map[string][]*domain.Reservation, len(l.byDate)),
	}
	for date, reservations := range l.byDate {
		copied := make([]*domain.Reservation, len(reservations))
		for i, r := range reservations {
			c := *r
			copied[i] = &c
		}
		clone.byDate[date] = copied
	}
	return clone
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
