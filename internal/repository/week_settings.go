package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// GetWeekSettings returns nil when the week has no settings row yet.
func (r *Repository) GetWeekSettings(companyID int64, week domain.WeekKey) (*domain.WeekSettings, error) {
	query := `
		SELECT necessary_employees, weekly_shift_targets, is_published, is_edit_allowed, created_at, version
		FROM week_settings
		WHERE company_id = $1 AND week_key = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.WeekSettings{
		CompanyID: companyID,
		WeekKey:   week,
	}

	var rawNecessary, rawTargets []byte
	dst := []any{&rawNecessary, &rawTargets, &settings.IsPublished, &settings.IsEditAllowed, &settings.CreatedAt, &settings.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, week).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(rawNecessary, &settings.NecessaryEmployees); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawTargets, &settings.WeeklyShiftTargets); err != nil {
		return nil, err
	}

	return settings, nil
}

// PutWeekSettings inserts or updates a week's settings. The version guard
// makes concurrent admin edits fail instead of silently overwriting.
func (r *Repository) PutWeekSettings(settings *domain.WeekSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rawNecessary, err := json.Marshal(settings.NecessaryEmployees)
	if err != nil {
		return err
	}
	rawTargets, err := json.Marshal(settings.WeeklyShiftTargets)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO week_settings (company_id, week_key, necessary_employees, weekly_shift_targets, is_published, is_edit_allowed)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, week_key) DO UPDATE
		SET
			necessary_employees = EXCLUDED.necessary_employees,
			weekly_shift_targets = EXCLUDED.weekly_shift_targets,
			is_published = EXCLUDED.is_published,
			is_edit_allowed = EXCLUDED.is_edit_allowed,
			version = week_settings.version + 1
		WHERE week_settings.version = $7
		RETURNING created_at, version
	`

	args := []any{settings.CompanyID, settings.WeekKey, rawNecessary, rawTargets, settings.IsPublished, settings.IsEditAllowed, settings.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.CreatedAt, &settings.Version); err != nil {
		return err
	}

	return nil
}
