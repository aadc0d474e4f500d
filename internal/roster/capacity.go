package roster

import (
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

// WeekdayDefaultCapacity 按星期的默认容量：周末闭馆，周三例会只排 2 人，
// 其余工作日排 3 人
func WeekdayDefaultCapacity(day time.Weekday) int {
	switch day {
	case time.Saturday, time.Sunday:
		return 0
	case time.Wednesday:
		return 2
	default:
		return 3
	}
}

// CapacityRegistry 负责解析每个日期的实际容量：
// 有覆盖值用覆盖值，没有则使用按星期的默认容量
type CapacityRegistry struct {
	overrides map[string]*domain.CapacityOverride
}

func NewCapacityRegistry(overrides []*domain.CapacityOverride) *CapacityRegistry {
	r := &CapacityRegistry{
		overrides: make(map[string]*domain.CapacityOverride),
	}
	for _, o := range overrides {
		r.overrides[o.Date] = o
	}
	return r
}

// EffectiveCapacity 返回某个日期的实际容量，结果一定是非负整数。
// 无法解析的日期视为容量 0，即不接受任何预约。
func (r *CapacityRegistry) EffectiveCapacity(date string) int {
	if o, exists := r.overrides[date]; exists {
		if o.Capacity < 0 {
			return 0
		}
		return o.Capacity
	}

	d, err := domain.ParseDate(date)
	if err != nil {
		return 0
	}

	return WeekdayDefaultCapacity(d.Weekday())
}

// SetOverride 插入或替换某个日期的容量覆盖值，负数在这里就被拒绝，不会到达存储层
func (r *CapacityRegistry) SetOverride(override *domain.CapacityOverride) error {
	if override.Capacity < 0 {
		return domain.ErrInvalidCapacity
	}

	r.overrides[override.Date] = override
	return nil
}

// Overrides 返回当前所有的覆盖值，按日期排序由调用方负责
func (r *CapacityRegistry) Overrides() []*domain.CapacityOverride {
	overrides := make([]*domain.CapacityOverride, 0, len(r.overrides))
	for _, o := range r.overrides {
		overrides = append(overrides, o)
	}
	return overrides
}

// Clone 深拷贝，snapshot 缓存在读取时用它避免和乐观更新互相干扰
func (r *CapacityRegistry) Clone() *CapacityRegistry {
	clone := &CapacityRegistry{
		overrides: make(map[string]*domain.CapacityOverride, len(r.overrides)),
	}
	for date, o := range r.overrides {
		copied := *o
		clone.overrides[date] = &copied
	}
	return clone
}
