package domain

import (
	"encoding/json"
	"time"
)

// 写操作不等待后端确认：handler 把消息发到队列里就视为成功，
// 由 worker 异步写入数据库，是否写入成功客户端无法观测。
const (
	MutationSubmitReservations    = "submit_reservations"
	MutationDeleteReservations    = "delete_reservations"
	MutationSaveCapacityOverrides = "save_capacity_overrides"
)

type MutationMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type SubmitReservationsData struct {
	UserID      int64     `json:"userID"`
	Date        string    `json:"date"`
	Slots       []string  `json:"slots"`
	Note        string    `json:"note"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type DeleteReservationsData struct {
	UserID int64    `json:"userID"`
	Date   string   `json:"date"`
	Slots  []string `json:"slots"`
}

type SaveCapacityOverridesData struct {
	Overrides []*CapacityOverride `json:"overrides"`
}

// NewMutationMessage 序列化负载并包装成队列消息
func NewMutationMessage(mutationType string, data any) (*MutationMessage, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &MutationMessage{
		Type: mutationType,
		Data: raw,
	}, nil
}
