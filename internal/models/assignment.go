package models

import "time"

type Shift string

const (
	ShiftDay   Shift = "DAY"
	ShiftNight Shift = "NIGHT"
)

// Valid — смен ровно две, всё остальное отклоняем на входе.
func (s Shift) Valid() bool {
	return s == ShiftDay || s == ShiftNight
}

// Assignment — связь "охранник закрывает пост в эту смену".
// Уникальный индекс (guard_id, shift) держит главный инвариант модели:
// у охранника не бывает двух действующих назначений в одной смене.
// Замена поста делается только через Engine.Reassign.
type Assignment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GuardID uint  `gorm:"not null;uniqueIndex:idx_assignments_guard_shift" json:"guardId"`
	PostID  uint  `gorm:"not null" json:"postId"`
	Shift   Shift `gorm:"type:varchar(10);not null;uniqueIndex:idx_assignments_guard_shift" json:"shift"`

	AssignedAt    time.Time  `json:"assignedAt"`
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"` // с какой даты действует, необязательно

	Guard Guard `json:"guard"`
	Post  Post  `json:"post"`
}
