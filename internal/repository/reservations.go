package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func (r *Repository) GetAllReservations() ([]*domain.Reservation, error) {
	query := `
		SELECT id, user_id, date, slot, note, created_at
		FROM reservations
		ORDER BY date, slot
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *Repository) GetReservationsByUser(userID int64) ([]*domain.Reservation, error) {
	query := `
		SELECT id, user_id, date, slot, note, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY date, slot
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetReservationCounts 返回预先聚合好的 date -> slot -> 数量，
// 日历渲染用它代替逐条预约记录
func (r *Repository) GetReservationCounts() (map[string]map[string]int, error) {
	query := `
		SELECT date, slot, COUNT(*)
		FROM reservations
		GROUP BY date, slot
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var date time.Time
		var slot string
		var count int
		if err := rows.Scan(&date, &slot, &count); err != nil {
			return nil, err
		}

		dateKey := domain.FormatDate(date)
		if _, exists := counts[dateKey]; !exists {
			counts[dateKey] = make(map[string]int)
		}
		counts[dateKey][slot] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// InsertReservations 在一个事务里插入一个人同一天的多个时段
func (r *Repository) InsertReservations(data *domain.SubmitReservationsData) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO reservations (user_id, date, slot, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, slot := range data.Slots {
		if _, err := tx.ExecContext(ctx, query, data.UserID, data.Date, slot, data.Note, data.SubmittedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteReservations 删除 (user, date, slots) 匹配的所有记录
func (r *Repository) DeleteReservations(data *domain.DeleteReservationsData) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		DELETE FROM reservations WHERE user_id = $1 AND date = $2 AND slot = $3
	`

	for _, slot := range data.Slots {
		if _, err := tx.ExecContext(ctx, query, data.UserID, data.Date, slot); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var date time.Time
		reservation := &domain.Reservation{}
		dst := []any{&reservation.ID, &reservation.UserID, &date, &reservation.Slot, &reservation.Note, &reservation.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reservation.Date = domain.FormatDate(date)
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}
