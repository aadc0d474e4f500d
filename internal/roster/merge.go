package roster

import (
	"sort"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

// MergeSlots 把若干 HH:MM-HH:MM 形式的时段合并成最少的连续区间。
// 时间都是补零的 24 小时制，所以字典序就是时间序，直接按字符串排序即可。
// 合并是幂等的，且结果与输入顺序无关；只有上一段的结束时间和下一段的
// 开始时间完全相等才算相邻，中间有空隙的时段不会被合并。
func MergeSlots(slots []string) []string {
	if len(slots) == 0 {
		return []string{}
	}

	sorted := make([]string, len(slots))
	copy(sorted, slots)
	sort.Strings(sorted)

	merged := make([]string, 0, len(sorted))
	currentStart, currentEnd := domain.SlotParts(sorted[0])
	currentRaw := sorted[0]

	flush := func() {
		if currentStart == currentEnd {
			// 没有分隔符的历史数据原样保留
			merged = append(merged, currentRaw)
			return
		}
		merged = append(merged, currentStart+"-"+currentEnd)
	}

	for _, slot := range sorted[1:] {
		start, end := domain.SlotParts(slot)
		if start != end && start == currentEnd {
			currentEnd = end
			continue
		}
		flush()
		currentStart, currentEnd, currentRaw = start, end, slot
	}
	flush()

	return merged
}

// RangeGroup 同一天内持有完全相同合并区间的所有人，用于值班表的并排展示
type RangeGroup struct {
	Range string   `json:"range"`
	Names []string `json:"names"`
}

// GroupReservations 把一天的预约按人分组、逐人合并时段，
// 再把得到完全相同区间的人归到一组。结果按区间的开始时间排序，
// 组内名字按字典序排序，保证输出稳定。
func GroupReservations(reservations []*domain.Reservation, nameOf func(int64) string) []RangeGroup {
	slotsByUser := make(map[int64][]string)
	for _, r := range reservations {
		slotsByUser[r.UserID] = append(slotsByUser[r.UserID], r.Slot)
	}

	namesByRange := make(map[string][]string)
	for userID, slots := range slotsByUser {
		name := nameOf(userID)
		for _, rng := range MergeSlots(slots) {
			namesByRange[rng] = append(namesByRange[rng], name)
		}
	}

	groups := make([]RangeGroup, 0, len(namesByRange))
	for rng, names := range namesByRange {
		sort.Strings(names)
		groups = append(groups, RangeGroup{Range: rng, Names: names})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Range < groups[j].Range
	})

	return groups
}
