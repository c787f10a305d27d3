package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	Action      string `gorm:"size:50;not null" json:"action"` // "create", "assign", "reassign" и т.п.
	Description string `gorm:"type:text" json:"description"`
	IPAddress   string `gorm:"size:45" json:"ipAddress"`
}
