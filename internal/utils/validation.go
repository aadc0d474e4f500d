package utils

import (
	"fmt"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func ValidateReservationDate(date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return fmt.Errorf("日期 %s 的格式错误，应为 YYYY-MM-DD", date)
	}
	return nil
}

// ValidateReservationSlots 检查提交的时段是否都属于允许预约的固定时段，
// 并且没有重复
func ValidateReservationSlots(slots []string) error {
	if len(slots) == 0 {
		return fmt.Errorf("至少需要选择一个时段")
	}

	seen := make(map[string]bool)
	for _, slot := range slots {
		if !domain.IsRequestableSlot(slot) {
			return fmt.Errorf("时段 %s 不在允许预约的范围内", slot)
		}
		if seen[slot] {
			return fmt.Errorf("时段 %s 重复出现", slot)
		}
		seen[slot] = true
	}

	return nil
}

// ValidateCapacityOverrides 检查批量提交的容量覆盖值，
// 负数和格式错误的日期在到达存储层之前就被拒绝
func ValidateCapacityOverrides(overrides []*domain.CapacityOverride) error {
	if len(overrides) == 0 {
		return fmt.Errorf("至少需要提交一条容量设置")
	}

	for _, o := range overrides {
		if err := ValidateReservationDate(o.Date); err != nil {
			return err
		}
		if o.Capacity < 0 {
			return fmt.Errorf("日期 %s: %w", o.Date, domain.ErrInvalidCapacity)
		}
	}

	return nil
}
