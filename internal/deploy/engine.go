// Package deploy — единственная точка изменения связок
// охранник ↔ пост ↔ смена. Все проверки назначений живут здесь,
// обработчики и фронтенд свои правила не изобретают.
package deploy

import (
	"errors"
	"time"

	"topsec-backend/internal/apperr"
	"topsec-backend/internal/models"
	"topsec-backend/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Engine struct {
	db       *gorm.DB
	notifier notify.Notifier
	log      *zap.Logger
}

func NewEngine(db *gorm.DB, n notify.Notifier, log *zap.Logger) *Engine {
	return &Engine{db: db, notifier: n, log: log}
}

// Assign создаёт новое назначение. Если охранник уже закрывает какую-то
// точку в эту смену — отказ ConflictError: замена делается только через
// Reassign, чтобы случайный повторный вызов не плодил дубли.
func (e *Engine) Assign(guardID, postID uint, shift models.Shift, effectiveDate *time.Time) (*models.Assignment, error) {
	if !shift.Valid() {
		return nil, apperr.Validationf("shift must be DAY or NIGHT")
	}

	var a models.Assignment
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := checkGuardAndPost(tx, guardID, postID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Assignment{}).
			Where("guard_id = ? AND shift = ?", guardID, shift).
			Count(&count).Error; err != nil {
			return apperr.Storage(err)
		}
		if count > 0 {
			return apperr.Conflictf("guard %d already holds a %s assignment", guardID, shift)
		}

		a = models.Assignment{
			GuardID:       guardID,
			PostID:        postID,
			Shift:         shift,
			AssignedAt:    time.Now(),
			EffectiveDate: effectiveDate,
		}
		if err := tx.Create(&a).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("guard assigned",
		zap.Uint("guard_id", guardID),
		zap.Uint("post_id", postID),
		zap.String("shift", string(shift)),
	)
	e.notifier.Publish(notify.Event{Entity: "assignment", ID: a.ID, Action: "assign"})
	return &a, nil
}

// Reassign атомарно заменяет действующее назначение охранника в смене
// новым. Удаление старого и создание нового идут одной транзакцией:
// состояния "снят, но не назначен" снаружи не видно никогда.
// Повторный вызов с теми же аргументами не ошибка — охранник просто
// остаётся на том же посту.
func (e *Engine) Reassign(guardID, postID uint, shift models.Shift, effectiveDate *time.Time) (*models.Assignment, error) {
	if !shift.Valid() {
		return nil, apperr.Validationf("shift must be DAY or NIGHT")
	}

	var a models.Assignment
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := checkGuardAndPost(tx, guardID, postID); err != nil {
			return err
		}

		if err := tx.Where("guard_id = ? AND shift = ?", guardID, shift).
			Delete(&models.Assignment{}).Error; err != nil {
			return apperr.Storage(err)
		}

		a = models.Assignment{
			GuardID:       guardID,
			PostID:        postID,
			Shift:         shift,
			AssignedAt:    time.Now(),
			EffectiveDate: effectiveDate,
		}
		if err := tx.Create(&a).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("guard reassigned",
		zap.Uint("guard_id", guardID),
		zap.Uint("post_id", postID),
		zap.String("shift", string(shift)),
	)
	e.notifier.Publish(notify.Event{Entity: "assignment", ID: a.ID, Action: "reassign"})
	return &a, nil
}

// Unassign снимает охранника со смены. Если назначения нет — это не
// ошибка, состояние "не назначен" уже достигнуто.
func (e *Engine) Unassign(guardID uint, shift models.Shift) error {
	if !shift.Valid() {
		return apperr.Validationf("shift must be DAY or NIGHT")
	}

	res := e.db.Where("guard_id = ? AND shift = ?", guardID, shift).
		Delete(&models.Assignment{})
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}

	e.log.Info("guard unassigned",
		zap.Uint("guard_id", guardID),
		zap.String("shift", string(shift)),
	)
	e.notifier.Publish(notify.Event{Entity: "guard", ID: guardID, Action: "unassign"})
	return nil
}

// ListActiveForGuard — действующие назначения охранника,
// не больше одного на смену.
func (e *Engine) ListActiveForGuard(guardID uint) ([]models.Assignment, error) {
	var list []models.Assignment
	err := e.db.
		Preload("Post").
		Preload("Post.Client").
		Where("guard_id = ?", guardID).
		Order("shift asc").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// ListActiveForPost — действующие назначения поста: сначала дневная
// смена, потом ночная, внутри смены свежее назначение первым.
func (e *Engine) ListActiveForPost(postID uint) ([]models.Assignment, error) {
	var list []models.Assignment
	err := e.db.
		Preload("Guard").
		Where("post_id = ?", postID).
		Order("shift asc, assigned_at desc, id desc").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// checkGuardAndPost проверяет, что оба конца связки существуют.
func checkGuardAndPost(tx *gorm.DB, guardID, postID uint) error {
	var guard models.Guard
	if err := tx.First(&guard, guardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("guard", guardID)
		}
		return apperr.Storage(err)
	}

	var post models.Post
	if err := tx.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post", postID)
		}
		return apperr.Storage(err)
	}
	return nil
}
