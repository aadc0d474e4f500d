package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func TestMergeSlots(t *testing.T) {
	tests := []struct {
		name     string
		slots    []string
		expected []string
	}{
		{
			name:     "空输入",
			slots:    []string{},
			expected: []string{},
		},
		{
			name:     "单个时段",
			slots:    []string{"13:00-13:30"},
			expected: []string{"13:00-13:30"},
		},
		{
			name:     "相邻时段合并而空隙保留",
			slots:    []string{"13:00-13:30", "13:30-14:00", "14:30-15:00"},
			expected: []string{"13:00-14:00", "14:30-15:00"},
		},
		{
			name:     "输入顺序不影响结果",
			slots:    []string{"14:30-15:00", "13:30-14:00", "13:00-13:30"},
			expected: []string{"13:00-14:00", "14:30-15:00"},
		},
		{
			name:     "全天连续时段合并为一个区间",
			slots:    domain.RequestableSlots(),
			expected: []string{"13:00-18:00"},
		},
		{
			name:     "不相邻的结束和开始永远不合并",
			slots:    []string{"13:00-13:30", "14:15-15:00"},
			expected: []string{"13:00-13:30", "14:15-15:00"},
		},
		{
			name:     "历史数据中的任意时段字符串原样保留",
			slots:    []string{"09:00-10:15", "夜班", "10:15-11:00"},
			expected: []string{"09:00-11:00", "夜班"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeSlots(tt.slots))
		})
	}
}

func TestMergeSlotsIdempotent(t *testing.T) {
	slots := []string{"13:30-14:00", "13:00-13:30", "15:00-15:30", "16:00-16:30", "16:30-17:00"}

	once := MergeSlots(slots)
	twice := MergeSlots(once)

	require.Equal(t, once, twice)
}

func TestGroupReservations(t *testing.T) {
	names := map[int64]string{1: "王伟", 2: "李娜", 3: "张强"}
	nameOf := func(id int64) string { return names[id] }

	reservations := []*domain.Reservation{
		{UserID: 1, Date: "2025-07-23", Slot: "13:00-13:30"},
		{UserID: 1, Date: "2025-07-23", Slot: "13:30-14:00"},
		{UserID: 2, Date: "2025-07-23", Slot: "13:00-13:30"},
		{UserID: 2, Date: "2025-07-23", Slot: "13:30-14:00"},
		{UserID: 3, Date: "2025-07-23", Slot: "15:00-15:30"},
	}

	groups := GroupReservations(reservations, nameOf)

	require.Len(t, groups, 2)
	// 合并出相同区间的人并排展示，名字按字典序
	assert.Equal(t, "13:00-14:00", groups[0].Range)
	assert.Equal(t, []string{"李娜", "王伟"}, groups[0].Names)
	assert.Equal(t, "15:00-15:30", groups[1].Range)
	assert.Equal(t, []string{"张强"}, groups[1].Names)
}

func TestGroupReservationsEmpty(t *testing.T) {
	groups := GroupReservations(nil, func(int64) string { return "" })
	assert.Empty(t, groups)
}
