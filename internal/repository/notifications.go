package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) CreateNotification(notification *domain.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rawMeta, err := json.Marshal(notification.Meta)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notifications (company_id, user_id, message, link, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at
	`

	args := []any{notification.CompanyID, notification.UserID, notification.Message, notification.Link, rawMeta}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetNotificationsByUser(companyID int64, userID int64) ([]*domain.Notification, error) {
	query := `
		SELECT id, message, link, meta, is_read, created_at
		FROM notifications
		WHERE company_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		notification := &domain.Notification{
			CompanyID: companyID,
			UserID:    userID,
		}
		var rawMeta []byte
		dst := []any{&notification.ID, &notification.Message, &notification.Link, &rawMeta, &notification.IsRead, &notification.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawMeta, &notification.Meta); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *Repository) MarkNotificationRead(companyID int64, userID int64, id int64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND company_id = $2 AND user_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id, companyID, userID)
	if err != nil {
		return err
	}

	return nil
}
