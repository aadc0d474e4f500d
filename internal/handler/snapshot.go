package handler

import (
	"net/http"
)

// ReloadSnapshot 从数据库重建内存快照。队列里的写操作是异步落库的，
// 客户端在需要权威数据时显式调用这个接口
func (h *Handler) ReloadSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Reload(); err != nil {
		// 刷新失败时旧快照依然可用
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateCountsCache()

	h.successResponse(w, r, "刷新快照成功", map[string]any{
		"loadedAt": h.cache.LoadedAt(),
	})
}
