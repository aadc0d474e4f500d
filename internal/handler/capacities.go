package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/utils"
)

func (h *Handler) GetCapacityOverrides(w http.ResponseWriter, r *http.Request) {
	registry, _ := h.cache.Snapshot()

	overrides := registry.Overrides()
	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].Date < overrides[j].Date
	})

	h.successResponse(w, r, "获取容量设置成功", overrides)
}

func (h *Handler) SaveCapacityOverrides(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Overrides []struct {
			Date     string `json:"date" validate:"required"`
			Capacity int    `json:"capacity"`
		} `json:"overrides" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	editorID, err := parseSub(r.Context().Value(SubCtxKey).(string))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	overrides := make([]*domain.CapacityOverride, 0, len(req.Overrides))
	for _, o := range req.Overrides {
		overrides = append(overrides, &domain.CapacityOverride{
			Date:      o.Date,
			Capacity:  o.Capacity,
			UpdatedBy: editorID,
			UpdatedAt: now,
		})
	}

	// 负数容量在这里就被拒绝，不会进入队列
	if err := utils.ValidateCapacityOverrides(overrides); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.publishMutation(domain.MutationSaveCapacityOverrides, &domain.SaveCapacityOverridesData{Overrides: overrides}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 乐观更新本地快照
	h.cache.ApplyCapacityOverrides(overrides)

	h.successResponse(w, r, "保存容量设置成功", overrides)
}
