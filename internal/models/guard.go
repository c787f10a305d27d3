package models

import "time"

// Максимальная длина номера удостоверения личности (национального ID).
const IDNumberMaxLen = 16

type Guard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name          string `gorm:"size:255;not null" json:"name"`
	IDNumber      string `gorm:"size:16;uniqueIndex;not null" json:"idNumber"` // только цифры
	PhoneNumber   string `gorm:"size:50" json:"phoneNumber"`
	HomeResidence string `gorm:"size:255" json:"homeResidence"`

	// Действующие назначения охранника (не больше одного на смену).
	// В JSON отдаём как posts — так это поле называет фронтенд.
	Assignments []Assignment `json:"posts,omitempty"`
}
