package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/config"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/repository"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/seed"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var daysAhead int
	var sheetPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机容量设置, 3: 插入随机预约, 4: 导入旧预约表 CSV)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.IntVar(&daysAhead, "days-ahead", 30, "随机日期的范围（从今天起的天数）")
	flag.StringVar(&sheetPath, "sheet", "./internal/seed/data/export.csv", "旧预约表 CSV 的路径")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的容量设置数量")
		} else {
			// 随机挑一个管理员作为编辑者
			admins, err := adminUsers(repo)
			if err != nil {
				slog.Error("无法获取管理员", slog.String("error", err.Error()))
				return
			}
			if len(admins) == 0 {
				slog.Error("数据库中没有管理员")
				return
			}

			cnt := n
			for i := 0; i < n; i++ {
				editorID := admins[rand.Intn(len(admins))]
				override := utils.GenerateRandomCapacityOverride(editorID, daysAhead)
				if err := repo.UpsertCapacityOverrides([]*domain.CapacityOverride{override}); err != nil {
					slog.Error("无法插入容量设置", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入容量设置成功", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的预约数量")
		} else {
			users, err := repo.GetAllUsers()
			if err != nil {
				slog.Error("无法获取所有用户", slog.String("error", err.Error()))
				return
			}
			if len(users) == 0 {
				slog.Error("数据库中没有用户")
				return
			}

			cnt := n
			for i := 0; i < n; i++ {
				user := users[rand.Intn(len(users))]
				data := utils.GenerateRandomReservation(user.ID, daysAhead)
				if err := repo.InsertReservations(data); err != nil {
					slog.Error("无法插入预约", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入预约成功", slog.Int("count", n-cnt))
		}
	case 4:
		seed.ImportSheetExport(repo, sheetPath)
	default:
		slog.Error("指定的操作非法")
	}
}

// adminUsers 返回所有黑心的用户 ID
func adminUsers(repo *repository.Repository) ([]int64, error) {
	users, err := repo.GetAllUsers()
	if err != nil {
		return nil, err
	}

	ids := []int64{}
	for _, user := range users {
		if user.IsAdmin() {
			ids = append(ids, user.ID)
		}
	}
	return ids, nil
}
