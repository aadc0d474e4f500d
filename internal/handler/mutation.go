package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

const countsCacheKey = "reservation_counts"

// publishMutation 把写操作发到队列里。消息一旦成功发出，
// 后台 worker 是否写入成功对客户端来说就不可观测了，
// 本地快照的乐观更新在下一次显式刷新之前就是权威数据。
func (h *Handler) publishMutation(mutationType string, data any) error {
	msg, err := domain.NewMutationMessage(mutationType, data)
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mqChannel.PublishWithContext(
		ctx,
		"",
		MutationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// invalidateCountsCache 写操作之后让 redis 中的预约计数缓存失效。
// 失效失败只记日志不影响请求：缓存最多在过期之前短暂地不一致
func (h *Handler) invalidateCountsCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, countsCacheKey).Err(); err != nil {
		slog.Error("无法使预约计数缓存失效", "error", err)
	}
}
