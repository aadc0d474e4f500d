package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func (r *Repository) GetAllCapacityOverrides() ([]*domain.CapacityOverride, error) {
	query := `
		SELECT date, capacity, updated_by, updated_at
		FROM capacity_overrides
		ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]*domain.CapacityOverride, 0)
	for rows.Next() {
		var date time.Time
		o := &domain.CapacityOverride{}
		dst := []any{&date, &o.Capacity, &o.UpdatedBy, &o.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		o.Date = domain.FormatDate(date)
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// UpsertCapacityOverrides 在一个事务里批量写入容量覆盖值，
// 已存在的日期直接替换
func (r *Repository) UpsertCapacityOverrides(overrides []*domain.CapacityOverride) error {
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
		INSERT INTO capacity_overrides (date, capacity, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE
		SET capacity = EXCLUDED.capacity, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
	`

	for _, o := range overrides {
		if _, err := tx.ExecContext(ctx, query, o.Date, o.Capacity, o.UpdatedBy, o.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}
