package models

import "time"

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `gorm:"size:255;not null" json:"name"` // Название организации-заказчика
	Email    string `gorm:"size:255" json:"email"`         // Контактный e-mail
	Location string `gorm:"size:255" json:"location"`      // Город / адрес

	// Сроки контракта на охрану. ContractEnd всегда >= ContractStart,
	// это проверяет directory.Store при создании.
	ContractStart time.Time `json:"contractStart"`
	ContractEnd   time.Time `json:"contractEnd"`

	Posts []Post `json:"posts,omitempty"`
}
