package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/roster"
)

// GetCalendar 构建日历网格。mode 决定每个格子里放什么：
// roster 放合并后的值班分组，capacity 放当天实际容量，
// request 放可预约时段的剩余名额（只展示到预约窗口的边界）。
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	var mode roster.Mode
	switch r.URL.Query().Get("mode") {
	case "", "roster":
		mode = roster.ModeRoster
	case "capacity":
		mode = roster.ModeCapacity
	case "request":
		mode = roster.ModeRequest
	default:
		h.badRequest(w, r, errors.New("mode 参数必须是 roster、capacity 或 request"))
		return
	}

	viewerID, err := parseSub(r.Context().Value(SubCtxKey).(string))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 值班表模式按姓名展示分组，这里一次性取出所有用户建立映射
	names := make(map[int64]string)
	if mode == roster.ModeRoster {
		users, err := h.repository.GetAllUsers()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		for _, user := range users {
			names[user.ID] = user.FullName
		}
	}

	registry, ledger := h.cache.Snapshot()
	builder := &roster.GridBuilder{
		Registry: registry,
		Ledger:   ledger,
		Viewer:   viewerID,
		NameOf: func(userID int64) string {
			return names[userID]
		},
	}

	h.successResponse(w, r, "获取日历成功", builder.Build(mode, time.Now()))
}
