package models

import "time"

// NotificationType categorizes a notification
type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationSystem   NotificationType = "system"
	NotificationMessage  NotificationType = "message"
)

// Notification represents an in-app notification for a user
type Notification struct {
	ID        string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	IsRead    bool             `gorm:"default:false;index" json:"isRead"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Link      string           `gorm:"type:varchar(500)" json:"link,omitempty"`
	CreatedAt time.Time        `gorm:"index" json:"createdAt"`
}

// TableName overrides the table name
func (Notification) TableName() string {
	return "notifications"
}
