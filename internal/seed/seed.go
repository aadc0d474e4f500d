package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/repository"
)

// SlotHeaderMap 把旧预约表导出的表头（全角冒号）映射到内部的时段表示
var SlotHeaderMap = map[string]string{
	"13：00-13：30": "13:00-13:30",
	"13：30-14：00": "13:30-14:00",
	"14：00-14：30": "14:00-14:30",
	"14：30-15：00": "14:30-15:00",
	"15：00-15：30": "15:00-15:30",
	"15：30-16：00": "15:30-16:00",
	"16：00-16：30": "16:00-16:30",
	"16：30-17：00": "16:30-17:00",
	"17：00-17：30": "17:00-17:30",
	"17：30-18：00": "17:30-18:00",
}

// ImportSheetExport 导入旧预约表的 CSV 导出。
// 第一列是日期，其余列是时段，单元格里是预约者姓名（多个用顿号分隔）。
// 姓名对不上现有用户的行只记日志跳过
func ImportSheetExport(r *repository.Repository, path string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}
	if len(headers) < 2 {
		slog.Error("表头至少需要日期列和一个时段列")
		return
	}

	// 第一列之后的每一列都必须是已知的时段
	slotByColumn := make(map[int]string)
	for i, header := range headers[1:] {
		slot, ok := SlotHeaderMap[strings.TrimSpace(header)]
		if !ok {
			slog.Error("无法识别的时段列", "header", header)
			return
		}
		slotByColumn[i+1] = slot
	}

	// 建立姓名到用户 ID 的映射
	users, err := r.GetAllUsers()
	if err != nil {
		slog.Error("无法获取所有用户", "error", err)
		return
	}
	idByName := make(map[string]int64)
	for _, user := range users {
		idByName[user.FullName] = user.ID
	}

	// 读取数据，按（用户，日期）聚合时段
	type key struct {
		userID int64
		date   string
	}
	slotsByKey := make(map[key][]string)

	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		date := strings.TrimSpace(row[0])
		if _, err := domain.ParseDate(date); err != nil {
			slog.Error("无法解析日期，跳过该行", "date", date)
			continue
		}

		for i, cell := range row {
			slot, ok := slotByColumn[i]
			if !ok {
				continue
			}
			for _, name := range strings.Split(cell, "、") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				userID, ok := idByName[name]
				if !ok {
					slog.Error("找不到对应的用户，跳过", "name", name, "date", date)
					continue
				}
				k := key{userID: userID, date: date}
				slotsByKey[k] = append(slotsByKey[k], slot)
			}
		}
	}

	// 插入预约
	cnt := 0
	now := time.Now()
	for k, slots := range slotsByKey {
		data := &domain.SubmitReservationsData{
			UserID:      k.userID,
			Date:        k.date,
			Slots:       slots,
			Note:        "旧预约表导入",
			SubmittedAt: now,
		}
		if err := r.InsertReservations(data); err != nil {
			slog.Error("无法插入预约", "user_id", k.userID, "date", k.date, "error", err)
			continue
		}
		cnt += len(slots)
	}

	slog.Info("导入旧预约表成功", slog.Int("count", cnt))
}
