package domain

import (
	"errors"
	"time"
)

// ErrInvalidCapacity 容量必须是非负整数，负数在到达存储层之前就会被拒绝
var ErrInvalidCapacity = errors.New("容量必须为非负整数")

// CapacityOverride 某个日期的容量覆盖值，没有覆盖值的日期使用按星期的默认容量
type CapacityOverride struct {
	Date      string    `json:"date"`
	Capacity  int       `json:"capacity"`
	UpdatedBy int64     `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}
