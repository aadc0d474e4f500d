package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestIsWithinRequestWindow(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		now      time.Time
		expected bool
	}{
		{"今天开放", "2025-07-14", date(2025, time.July, 14), true},
		{"本月剩余日期开放", "2025-07-31", date(2025, time.July, 1), true},
		{"过去的日期关闭", "2025-06-30", date(2025, time.July, 14), false},
		{"昨天关闭", "2025-07-13", date(2025, time.July, 14), false},
		{"14 号时下个月还未开放", "2025-08-01", date(2025, time.July, 14), false},
		{"15 号当天下个月开放", "2025-08-01", date(2025, time.July, 15), true},
		{"月末时下个月整月开放", "2025-08-31", date(2025, time.July, 20), true},
		{"后两个月永远关闭", "2025-09-01", date(2025, time.July, 31), false},
		{"跨年：12 月 15 号开放次年 1 月", "2026-01-10", date(2025, time.December, 15), true},
		{"跨年：12 月 14 号不开放次年 1 月", "2026-01-10", date(2025, time.December, 14), false},
		{"无法解析的日期关闭", "不是日期", date(2025, time.July, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWithinRequestWindow(tt.target, tt.now))
		})
	}
}
