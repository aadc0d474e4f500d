package domain

import "time"

// Reservation 一条值班预约记录，date 和 slot 均以字符串形式存储：
// date 形如 2025-07-23，slot 形如 13:00-13:30。
// 同一个 (date, slot) 允许存在多条记录，容量只限制允许的数量，
// 并不由账本本身去重（见 roster 包）。
type Reservation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}
