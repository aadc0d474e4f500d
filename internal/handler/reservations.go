package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/roster"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/utils"
)

func (h *Handler) SubmitReservations(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Date  string   `json:"date" validate:"required"`
		Slots []string `json:"slots" validate:"required,min=1"`
		Note  string   `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateReservationDate(req.Date); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateReservationSlots(req.Slots); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !roster.IsWithinRequestWindow(req.Date, time.Now()) {
		h.errorResponse(w, r, "该日期暂未开放预约")
		return
	}

	// 用本地快照做提示性检查。写入走异步队列，后端不会再校验容量，
	// 两个人同时抢最后一个名额时可能都成功，以下一次刷新后的数据为准
	registry, ledger := h.cache.Snapshot()
	availability := &roster.Availability{Registry: registry, Ledger: ledger}

	if registry.EffectiveCapacity(req.Date) == 0 {
		h.errorResponse(w, r, "该日期不接受预约")
		return
	}

	for _, slot := range req.Slots {
		if ledger.HasReservation(myInfo.ID, req.Date, slot) {
			h.errorResponse(w, r, "您已预约过时段 "+slot)
			return
		}
		if availability.Remaining(req.Date, slot) <= 0 {
			h.errorResponse(w, r, "时段 "+slot+" 已满")
			return
		}
	}

	data := &domain.SubmitReservationsData{
		UserID:      myInfo.ID,
		Date:        req.Date,
		Slots:       req.Slots,
		Note:        req.Note,
		SubmittedAt: time.Now(),
	}

	if err := h.publishMutation(domain.MutationSubmitReservations, data); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.cache.ApplySubmit(data)
	h.invalidateCountsCache()

	h.successResponse(w, r, "预约提交成功", data)
}

func (h *Handler) DeleteReservations(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Date   string   `json:"date" validate:"required"`
		Slots  []string `json:"slots" validate:"required,min=1"`
		UserID *int64   `json:"userID"` // 只有黑心可以删除他人的预约
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateReservationDate(req.Date); err != nil {
		h.badRequest(w, r, err)
		return
	}

	targetID := myInfo.ID
	if req.UserID != nil && *req.UserID != myInfo.ID {
		if !myInfo.IsAdmin() {
			h.errorResponse(w, r, "权限不足")
			return
		}
		targetID = *req.UserID
	}

	data := &domain.DeleteReservationsData{
		UserID: targetID,
		Date:   req.Date,
		Slots:  req.Slots,
	}

	if err := h.publishMutation(domain.MutationDeleteReservations, data); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.cache.ApplyDelete(data)
	h.invalidateCountsCache()

	h.successResponse(w, r, "预约删除成功", nil)
}

func (h *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	subString := r.Context().Value(SubCtxKey).(string)
	role := domain.Role(r.Context().Value(RoleCtxKey).(string))

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "mine"
	}

	switch scope {
	case "mine":
		userID, err := parseSub(subString)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		reservations, err := h.repository.GetReservationsByUser(userID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		h.successResponse(w, r, "获取个人预约成功", reservations)
	case "all":
		if role != domain.RoleBlackCore {
			h.errorResponse(w, r, "权限不足")
			return
		}

		reservations, err := h.repository.GetAllReservations()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		h.successResponse(w, r, "获取全部预约成功", reservations)
	default:
		h.errorResponse(w, r, "无效的范围参数")
	}
}

// GetReservationCounts 返回预先聚合好的预约计数，优先读 redis 缓存
func (h *Handler) GetReservationCounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, countsCacheKey).Result()
	if err == nil {
		counts := make(map[string]map[string]int)
		if err := json.Unmarshal([]byte(cached), &counts); err == nil {
			h.successResponse(w, r, "获取预约计数成功", counts)
			return
		}
		// 缓存内容损坏时当作未命中处理
		slog.Error("预约计数缓存内容无法解析", "error", err)
	} else if err != redis.Nil {
		slog.Error("无法读取预约计数缓存", "error", err)
	}

	counts, err := h.repository.GetReservationCounts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if body, err := json.Marshal(counts); err == nil {
		if err := h.redisClient.Set(ctx, countsCacheKey, body, time.Duration(h.config.CountsCache.Expiration)*time.Second).Err(); err != nil {
			slog.Error("无法写入预约计数缓存", "error", err)
		}
	}

	h.successResponse(w, r, "获取预约计数成功", counts)
}
