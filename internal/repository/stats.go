package repository

import (
	"context"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) PutWeeklyStats(record *domain.WeeklyStatsRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO weekly_stats (company_id, year, month, week_key, user_id, night_shifts, shabbat_shifts, regular_shifts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, week_key, user_id) DO UPDATE
		SET
			year = EXCLUDED.year,
			month = EXCLUDED.month,
			night_shifts = EXCLUDED.night_shifts,
			shabbat_shifts = EXCLUDED.shabbat_shifts,
			regular_shifts = EXCLUDED.regular_shifts
		RETURNING created_at
	`

	args := []any{record.CompanyID, record.Year, record.Month, record.WeekKey, record.UserID, record.Stats.NightShifts, record.Stats.ShabbatShifts, record.Stats.RegularShifts}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetMonthlyStats(companyID int64, year int, month int, userID int64) ([]*domain.WeeklyStatsRecord, error) {
	query := `
		SELECT week_key, night_shifts, shabbat_shifts, regular_shifts, created_at
		FROM weekly_stats
		WHERE company_id = $1 AND year = $2 AND month = $3 AND user_id = $4
		ORDER BY week_key
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, year, month, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.WeeklyStatsRecord, 0)
	for rows.Next() {
		record := &domain.WeeklyStatsRecord{
			CompanyID: companyID,
			Year:      year,
			Month:     month,
			UserID:    userID,
		}
		dst := []any{&record.WeekKey, &record.Stats.NightShifts, &record.Stats.ShabbatShifts, &record.Stats.RegularShifts, &record.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetYearlyStats(companyID int64, year int, userID int64) ([]*domain.WeeklyStatsRecord, error) {
	query := `
		SELECT month, week_key, night_shifts, shabbat_shifts, regular_shifts, created_at
		FROM weekly_stats
		WHERE company_id = $1 AND year = $2 AND user_id = $3
		ORDER BY month, week_key
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, year, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.WeeklyStatsRecord, 0)
	for rows.Next() {
		record := &domain.WeeklyStatsRecord{
			CompanyID: companyID,
			Year:      year,
			UserID:    userID,
		}
		dst := []any{&record.Month, &record.WeekKey, &record.Stats.NightShifts, &record.Stats.ShabbatShifts, &record.Stats.RegularShifts, &record.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
