package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) GetWeekAvailabilities(companyID int64, week domain.WeekKey) (map[int64]*domain.WeekAvailability, error) {
	query := `
		SELECT user_id, grid, notes, created_at, version
		FROM week_availabilities
		WHERE company_id = $1 AND week_key = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]*domain.WeekAvailability)
	for rows.Next() {
		av := &domain.WeekAvailability{
			CompanyID: companyID,
			WeekKey:   week,
		}
		var rawGrid []byte
		dst := []any{&av.UserID, &rawGrid, &av.Notes, &av.CreatedAt, &av.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawGrid, &av.Grid); err != nil {
			return nil, err
		}
		result[av.UserID] = av
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetWeekAvailability returns nil when the employee has no record for the week.
func (r *Repository) GetWeekAvailability(companyID int64, week domain.WeekKey, userID int64) (*domain.WeekAvailability, error) {
	query := `
		SELECT grid, notes, created_at, version
		FROM week_availabilities
		WHERE company_id = $1 AND week_key = $2 AND user_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	av := &domain.WeekAvailability{
		CompanyID: companyID,
		WeekKey:   week,
		UserID:    userID,
	}

	var rawGrid []byte
	dst := []any{&rawGrid, &av.Notes, &av.CreatedAt, &av.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, week, userID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(rawGrid, &av.Grid); err != nil {
		return nil, err
	}

	return av, nil
}

func (r *Repository) CreateWeekAvailability(av *domain.WeekAvailability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rawGrid, err := json.Marshal(av.Grid)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO week_availabilities (company_id, week_key, user_id, grid, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, version
	`

	args := []any{av.CompanyID, av.WeekKey, av.UserID, rawGrid, av.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&av.CreatedAt, &av.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateWeekNotes(companyID int64, week domain.WeekKey, userID int64, notes string) error {
	query := `
		UPDATE week_availabilities
		SET notes = $4, version = version + 1
		WHERE company_id = $1 AND week_key = $2 AND user_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, companyID, week, userID, notes)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ApplyCellChanges patches cell statuses in a single transaction, so a
// cascade that touches two weeks either lands completely or not at all.
func (r *Repository) ApplyCellChanges(companyID int64, changes []domain.CellChange) error {
	if len(changes) == 0 {
		return nil
	}

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
		UPDATE week_availabilities
		SET grid = jsonb_set(grid, ARRAY[$4, $5, 'status'], to_jsonb($6::text)),
		    version = version + 1
		WHERE company_id = $1 AND week_key = $2 AND user_id = $3
	`

	for _, ch := range changes {
		args := []any{companyID, ch.WeekKey, ch.UserID, string(ch.Shift), string(ch.Day), string(ch.Status)}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("no availability record for user %d in %s", ch.UserID, ch.WeekKey)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
