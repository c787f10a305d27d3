package models

import "time"

// Post — охраняемый объект (пост) заказчика. Пост всегда принадлежит
// ровно одному клиенту, клиента после создания не меняем.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ClientID uint   `gorm:"not null" json:"clientId"`
	Client   Client `json:"client"`

	Title    string `gorm:"size:255;not null" json:"title"`
	Location string `gorm:"size:255" json:"location"` // описание места, необязательно

	// Действующие назначения охранников на пост.
	// В JSON отдаём как guards — так это поле называет фронтенд.
	Assignments []Assignment `json:"guards,omitempty"`
}
