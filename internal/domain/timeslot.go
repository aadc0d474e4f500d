package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate 解析形如 2025-07-23 的日期字符串
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate 把时间格式化为日期字符串（忽略时分秒）
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// 预约开放的时间窗口：13:00 到 18:00，每半小时一个时段
const (
	requestOpenHour  = 13
	requestCloseHour = 18
)

// RequestableSlots 返回允许预约的十个固定时段，
// 历史数据中可能存在这个范围之外的时段，账本和合并逻辑不依赖这个列表。
func RequestableSlots() []string {
	slots := make([]string, 0, (requestCloseHour-requestOpenHour)*2)
	for h := requestOpenHour; h < requestCloseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00-%02d:30", h, h))
		slots = append(slots, fmt.Sprintf("%02d:30-%02d:00", h, h+1))
	}
	return slots
}

// IsRequestableSlot 判断时段是否属于允许预约的固定时段
func IsRequestableSlot(slot string) bool {
	for _, s := range RequestableSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotParts 把 HH:MM-HH:MM 形式的时段拆成开始和结束时间。
// 格式不符合预期时把整个字符串同时作为开始和结束返回，
// 这样的时段永远不会和其他时段相邻，合并时会原样保留。
func SlotParts(slot string) (start string, end string) {
	start, end, ok := strings.Cut(slot, "-")
	if !ok {
		return slot, slot
	}
	return start, end
}
