package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func TestWeekdayDefaultCapacity(t *testing.T) {
	expected := map[time.Weekday]int{
		time.Sunday:    0,
		time.Monday:    3,
		time.Tuesday:   3,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    3,
		time.Saturday:  0,
	}

	for day, capacity := range expected {
		assert.Equal(t, capacity, WeekdayDefaultCapacity(day), day.String())
	}
}

func TestEffectiveCapacity(t *testing.T) {
	registry := NewCapacityRegistry([]*domain.CapacityOverride{
		{Date: "2025-07-23", Capacity: 5}, // 周三，默认是 2
		{Date: "2025-07-26", Capacity: 1}, // 周六，默认是 0
	})

	assert.Equal(t, 5, registry.EffectiveCapacity("2025-07-23"))
	assert.Equal(t, 1, registry.EffectiveCapacity("2025-07-26"))
	// 没有覆盖值的日期使用按星期的默认容量
	assert.Equal(t, 3, registry.EffectiveCapacity("2025-07-24")) // 周四
	assert.Equal(t, 2, registry.EffectiveCapacity("2025-07-30")) // 周三
	assert.Equal(t, 0, registry.EffectiveCapacity("2025-07-27")) // 周日
	// 无法解析的日期视为不接受预约
	assert.Equal(t, 0, registry.EffectiveCapacity("不是日期"))
}

func TestSetOverride(t *testing.T) {
	registry := NewCapacityRegistry(nil)

	require.NoError(t, registry.SetOverride(&domain.CapacityOverride{Date: "2025-07-23", Capacity: 0}))
	assert.Equal(t, 0, registry.EffectiveCapacity("2025-07-23"))

	// 替换已有的覆盖值
	require.NoError(t, registry.SetOverride(&domain.CapacityOverride{Date: "2025-07-23", Capacity: 4}))
	assert.Equal(t, 4, registry.EffectiveCapacity("2025-07-23"))

	// 负数在到达存储层之前就被拒绝
	err := registry.SetOverride(&domain.CapacityOverride{Date: "2025-07-23", Capacity: -1})
	require.ErrorIs(t, err, domain.ErrInvalidCapacity)
	assert.Equal(t, 4, registry.EffectiveCapacity("2025-07-23"))
}

func TestCapacityRegistryClone(t *testing.T) {
	registry := NewCapacityRegistry([]*domain.CapacityOverride{
		{Date: "2025-07-23", Capacity: 2},
	})

	clone := registry.Clone()
	require.NoError(t, clone.SetOverride(&domain.CapacityOverride{Date: "2025-07-23", Capacity: 9}))

	assert.Equal(t, 2, registry.EffectiveCapacity("2025-07-23"))
	assert.Equal(t, 9, clone.EffectiveCapacity("2025-07-23"))
}
