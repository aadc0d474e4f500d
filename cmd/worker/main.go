package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// 预约写入 worker：api 把写操作发进队列后立即返回，
// 这里按顺序落库。落库时不检查容量，并发提交可能超额，
// 客户端刷新快照后才能看到真实结果
func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("无法连接到数据库", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	q, err := ch.QueueDeclare(
		"reservation_queue", // 队列名称
		true,                // 是否持久化
		false,               // 是否自动删除，设置为 false 可以避免没有消费者的时候自动删除队列
		false,               // 是否独占，即是否允许多个消费者访问这个队列
		false,               // 是否不等待，设置为 false，即等待 RabbitMQ 确认队列是否创建成功
		nil,                 // 额外参数
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name, // 队列
		"",     // 消费者标识，设置为空字符串，表示由 RabbitMQ 自动分配
		false,  // 是否自动确认消息
		false,  // 是否独占队列
		false,  // 是否禁止消费者接受自己发送的消息，必须设置为 false，因为 RabbitMQ 不支持这个参数
		false,  // 是否不等待，等待 RabbitMQ 响应
		nil,    // 额外参数
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("收到消息", slog.String("message", string(msg.Body)))

				mutation := domain.MutationMessage{}
				if err := json.Unmarshal(msg.Body, &mutation); err != nil {
					logger.Error("写操作消息反序列化失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// 根据操作类型解析数据并落库
				var applyErr error
				switch mutation.Type {
				case domain.MutationSubmitReservations:
					data := domain.SubmitReservationsData{}
					if err := json.Unmarshal(mutation.Data, &data); err != nil {
						logger.Error("提交预约数据反序列化失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					applyErr = repo.InsertReservations(&data)
				case domain.MutationDeleteReservations:
					data := domain.DeleteReservationsData{}
					if err := json.Unmarshal(mutation.Data, &data); err != nil {
						logger.Error("取消预约数据反序列化失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					applyErr = repo.DeleteReservations(&data)
				case domain.MutationSaveCapacityOverrides:
					data := domain.SaveCapacityOverridesData{}
					if err := json.Unmarshal(mutation.Data, &data); err != nil {
						logger.Error("容量设置数据反序列化失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					applyErr = repo.UpsertCapacityOverrides(data.Overrides)
				default:
					logger.Error("不支持的写操作类型", slog.String("type", mutation.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if applyErr != nil {
					logger.Error("写操作落库失败", slog.String("type", mutation.Type), slog.String("error", applyErr.Error()))
					_ = msg.Nack(false, true) // 将消息重新入队
					continue
				}

				// 确认消息
				_ = msg.Ack(false)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	slog.Info("正在关闭 reservation worker...")
	cancel()
	wg.Wait() // 等待所有 goroutine 完成
	slog.Info("reservation worker 已成功关闭")
}
