package roster

// Availability 把容量和账本组合成每个时段的剩余名额。
// 这里的检查只是提示性的：写入走异步队列，后端不会再做容量校验，
// 两个客户端同时抢最后一个名额时可能出现超额，以数据库中的记录为准。
type Availability struct {
	Registry *CapacityRegistry
	Ledger   *SlotLedger
}

// Remaining 返回某个日期某个时段的剩余名额，已有预约超过容量时返回 0
func (a *Availability) Remaining(date string, slot string) int {
	remaining := a.Registry.EffectiveCapacity(date) - a.Ledger.CountFor(date, slot)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsRequestable 判断 userID 是否可以预约某个时段：
// 要求还有剩余名额，并且本人没有持有完全相同的时段（防止重复预约）
func (a *Availability) IsRequestable(date string, slot string, userID int64) bool {
	if a.Remaining(date, slot) <= 0 {
		return false
	}
	return !a.Ledger.HasReservation(userID, date, slot)
}
