package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestableSlots(t *testing.T) {
	slots := RequestableSlots()

	require.Len(t, slots, 10)
	assert.Equal(t, "13:00-13:30", slots[0])
	assert.Equal(t, "17:30-18:00", slots[9])

	// 相邻时段首尾相接
	for i := 0; i < len(slots)-1; i++ {
		_, end := SlotParts(slots[i])
		start, _ := SlotParts(slots[i+1])
		assert.Equal(t, end, start)
	}
}

func TestSlotParts(t *testing.T) {
	start, end := SlotParts("13:00-13:30")
	assert.Equal(t, "13:00", start)
	assert.Equal(t, "13:30", end)

	// 历史数据中可能存在没有分隔符的时段
	start, end = SlotParts("夜班")
	assert.Equal(t, "夜班", start)
	assert.Equal(t, "夜班", end)
}
