package domain

import "time"

type Notification struct {
	ID        int64             `json:"id"`
	CompanyID int64             `json:"companyID"`
	UserID    int64             `json:"userID"`
	Message   string            `json:"message"`
	Link      string            `json:"link"`
	Meta      map[string]string `json:"meta"`
	IsRead    bool              `json:"isRead"`
	CreatedAt time.Time         `json:"createdAt"`
}
