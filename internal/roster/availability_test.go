package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func TestLedgerCountAndRemove(t *testing.T) {
	ledger := NewSlotLedger([]*domain.Reservation{
		{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
		{UserID: 1, Date: "2025-07-23", Slot: "13:30-14:00"},
		{UserID: 2, Date: "2025-07-23", Slot: "13:00-13:30"},
		{UserID: 1, Date: "2025-07-24", Slot: "13:00-13:30"},
	})

	assert.Equal(t, 2, ledger.CountFor("2025-07-23", "13:00-13:30"))
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:30-14:00"))
	assert.Equal(t, 0, ledger.CountFor("2025-07-25", "13:00-13:30"))
	assert.Len(t, ledger.ReservationsFor("2025-07-23"), 3)

	// 一次删除同一个人同一天的多个时段
	removed := ledger.Remove(1, "2025-07-23", []string{"13:00-13:30", "13:30-14:00"})
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, ledger.CountFor("2025-07-23", "13:00-13:30"))
	assert.Equal(t, 0, ledger.CountFor("2025-07-23", "13:30-14:00"))

	// 其他人和其他日期的记录不受影响
	assert.True(t, ledger.HasReservation(2, "2025-07-23", "13:00-13:30"))
	assert.True(t, ledger.HasReservation(1, "2025-07-24", "13:00-13:30"))
}

func TestLedgerAllowsDuplicates(t *testing.T) {
	// 账本本身不去重，是否允许新增由 Availability 决定
	ledger := NewSlotLedger(nil)
	ledger.Add(&domain.Reservation{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"})
	ledger.Add(&domain.Reservation{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"})

	assert.Equal(t, 2, ledger.CountFor("2025-07-23", "13:00-13:30"))
	assert.Equal(t, 2, ledger.Remove(1, "2025-07-23", []string{"13:00-13:30"}))
}

func TestRemainingNeverNegative(t *testing.T) {
	// 写入不做事务性校验，数据库里可能出现超过容量的记录，
	// 剩余名额此时显示为 0 而不是负数
	registry := NewCapacityRegistry([]*domain.CapacityOverride{{Date: "2025-07-23", Capacity: 1}})
	ledger := NewSlotLedger([]*domain.Reservation{
		{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
		{UserID: 2, Date: "2025-07-23", Slot: "13:00-13:30"},
		{UserID: 3, Date: "2025-07-23", Slot: "13:00-13:30"},
	})
	availability := &Availability{Registry: registry, Ledger: ledger}

	assert.Equal(t, 0, availability.Remaining("2025-07-23", "13:00-13:30"))
}

func TestIsRequestableExcludesHolder(t *testing.T) {
	registry := NewCapacityRegistry([]*domain.CapacityOverride{{Date: "2025-07-23", Capacity: 3}})
	ledger := NewSlotLedger([]*domain.Reservation{
		{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
	})
	availability := &Availability{Registry: registry, Ledger: ledger}

	// 还有名额，但本人已持有该时段时不允许重复预约
	require.Greater(t, availability.Remaining("2025-07-23", "13:00-13:30"), 0)
	assert.False(t, availability.IsRequestable("2025-07-23", "13:00-13:30", 1))
	assert.True(t, availability.IsRequestable("2025-07-23", "13:00-13:30", 2))
}

func TestAvailabilityEndToEnd(t *testing.T) {
	registry := NewCapacityRegistry([]*domain.CapacityOverride{{Date: "2025-07-23", Capacity: 2}})
	ledger := NewSlotLedger([]*domain.Reservation{
		{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
	})
	availability := &Availability{Registry: registry, Ledger: ledger}

	assert.Equal(t, 1, availability.Remaining("2025-07-23", "13:00-13:30"))

	ledger.Add(&domain.Reservation{UserID: 2, Date: "2025-07-23", Slot: "13:00-13:30"})

	assert.Equal(t, 0, availability.Remaining("2025-07-23", "13:00-13:30"))
	assert.False(t, availability.IsRequestable("2025-07-23", "13:00-13:30", 3))
}
