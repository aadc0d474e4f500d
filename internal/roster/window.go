package roster

import (
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

// IsWithinRequestWindow 判断某个日期当前是否开放预约：
//   - 过去的日期永远关闭
//   - 本月从今天起全部开放
//   - 每月 15 号（含）开始，下个月也开放
//   - 更远的月份不开放
//
// 也就是一个滑动的两个月窗口，在每月中旬扩展到下个月。
// 无法解析的日期视为不开放。
func IsWithinRequestWindow(date string, now time.Time) bool {
	target, err := domain.ParseDate(date)
	if err != nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if target.Before(today) {
		return false
	}

	monthsDiff := (target.Year()*12 + int(target.Month())) - (now.Year()*12 + int(now.Month()))
	switch monthsDiff {
	case 0:
		return true
	case 1:
		return now.Day() >= 15
	default:
		return false
	}
}
