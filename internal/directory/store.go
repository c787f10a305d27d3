// Package directory — справочник клиентов, постов и охранников.
// Чистый CRUD с проверками ссылочной целостности; правил назначений
// здесь нет, они в deploy.Engine.
package directory

import (
	"errors"
	"strings"
	"time"

	"topsec-backend/internal/apperr"
	"topsec-backend/internal/models"
	"topsec-backend/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Store struct {
	db       *gorm.DB
	notifier notify.Notifier
	log      *zap.Logger
}

func NewStore(db *gorm.DB, n notify.Notifier, log *zap.Logger) *Store {
	return &Store{db: db, notifier: n, log: log}
}

//
// КЛИЕНТЫ
//

type ClientInput struct {
	Name          string
	Email         string
	Location      string
	ContractStart time.Time
	ContractEnd   time.Time
}

func (s *Store) CreateClient(in ClientInput) (*models.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Location = strings.TrimSpace(in.Location)

	if len(in.Name) < 3 {
		return nil, apperr.Validationf("client name must be at least 3 characters")
	}
	if in.ContractEnd.Before(in.ContractStart) {
		return nil, apperr.Validationf("contract end date must not be before start date")
	}

	// --- ПРОВЕРКА УНИКАЛЬНОСТИ ИМЕНИ ---
	var count int64
	if err := s.db.Model(&models.Client{}).
		Where("LOWER(name) = LOWER(?)", in.Name).
		Count(&count).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if count > 0 {
		return nil, apperr.Conflictf("client with this name already exists")
	}

	// --- ПРОВЕРКА УНИКАЛЬНОСТИ EMAIL ---
	if in.Email != "" {
		if err := s.db.Model(&models.Client{}).
			Where("LOWER(email) = LOWER(?)", in.Email).
			Count(&count).Error; err != nil {
			return nil, apperr.Storage(err)
		}
		if count > 0 {
			return nil, apperr.Conflictf("client with this e-mail already exists")
		}
	}

	client := models.Client{
		Name:          in.Name,
		Email:         in.Email,
		Location:      in.Location,
		ContractStart: in.ContractStart,
		ContractEnd:   in.ContractEnd,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	s.log.Info("client created", zap.Uint("client_id", client.ID), zap.String("name", client.Name))
	s.notifier.Publish(notify.Event{Entity: "client", ID: client.ID, Action: "create"})
	return &client, nil
}

func (s *Store) ClientByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client", id)
		}
		return nil, apperr.Storage(err)
	}
	return &client, nil
}

// DeleteClientCascade удаляет клиента вместе с его постами и их
// назначениями. Каскад — осознанное решение и видно из имени:
// другого способа удалить клиента нет.
func (s *Store) DeleteClientCascade(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("client", id)
			}
			return apperr.Storage(err)
		}

		var postIDs []uint
		if err := tx.Model(&models.Post{}).
			Where("client_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return apperr.Storage(err)
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).
				Delete(&models.Assignment{}).Error; err != nil {
				return apperr.Storage(err)
			}
			if err := tx.Where("client_id = ?", id).
				Delete(&models.Post{}).Error; err != nil {
				return apperr.Storage(err)
			}
		}

		if err := tx.Delete(&models.Client{}, id).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("client deleted with posts and assignments", zap.Uint("client_id", id))
	s.notifier.Publish(notify.Event{Entity: "client", ID: id, Action: "delete"})
	return nil
}

//
// ПОСТЫ
//

type PostInput struct {
	Title    string
	Location string
	ClientID uint
}

func (s *Store) CreatePost(in PostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return nil, apperr.Validationf("post title must not be empty")
	}

	// пост без клиента не существует
	if _, err := s.ClientByID(in.ClientID); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:    in.Title,
		Location: in.Location,
		ClientID: in.ClientID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	s.log.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("client_id", post.ClientID))
	s.notifier.Publish(notify.Event{Entity: "post", ID: post.ID, Action: "create"})
	return &post, nil
}

func (s *Store) PostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.
		Preload("Client").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("shift asc, assigned_at desc, id desc")
		}).
		Preload("Assignments.Guard").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post", id)
		}
		return nil, apperr.Storage(err)
	}
	return &post, nil
}

//
// ОХРАННИКИ
//

type GuardInput struct {
	Name          string
	IDNumber      string
	PhoneNumber   string
	HomeResidence string
}

func (in *GuardInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.HomeResidence = strings.TrimSpace(in.HomeResidence)

	if in.Name == "" {
		return apperr.Validationf("guard name must not be empty")
	}
	if in.IDNumber == "" {
		return apperr.Validationf("id number must not be empty")
	}
	if len(in.IDNumber) > models.IDNumberMaxLen {
		return apperr.Validationf("id number must be at most %d digits", models.IDNumberMaxLen)
	}
	if !digitsOnly(in.IDNumber) {
		return apperr.Validationf("id number must contain digits only")
	}
	return nil
}

func (s *Store) CreateGuard(in GuardInput) (*models.Guard, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	// --- ПРОВЕРКА УНИКАЛЬНОСТИ НОМЕРА УДОСТОВЕРЕНИЯ ---
	var count int64
	if err := s.db.Model(&models.Guard{}).
		Where("id_number = ?", in.IDNumber).
		Count(&count).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if count > 0 {
		return nil, apperr.Conflictf("guard with this id number already exists")
	}

	guard := models.Guard{
		Name:          in.Name,
		IDNumber:      in.IDNumber,
		PhoneNumber:   in.PhoneNumber,
		HomeResidence: in.HomeResidence,
	}
	if err := s.db.Create(&guard).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	s.log.Info("guard created", zap.Uint("guard_id", guard.ID), zap.String("name", guard.Name))
	s.notifier.Publish(notify.Event{Entity: "guard", ID: guard.ID, Action: "create"})
	return &guard, nil
}

func (s *Store) UpdateGuard(id uint, in GuardInput) (*models.Guard, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var guard models.Guard
	if err := s.db.First(&guard, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("guard", id)
		}
		return nil, apperr.Storage(err)
	}

	// --- ПРОВЕРКА УНИКАЛЬНОСТИ НОМЕРА (кроме текущего охранника) ---
	if in.IDNumber != guard.IDNumber {
		var count int64
		if err := s.db.Model(&models.Guard{}).
			Where("id_number = ? AND id <> ?", in.IDNumber, guard.ID).
			Count(&count).Error; err != nil {
			return nil, apperr.Storage(err)
		}
		if count > 0 {
			return nil, apperr.Conflictf("guard with this id number already exists")
		}
	}

	guard.Name = in.Name
	guard.IDNumber = in.IDNumber
	guard.PhoneNumber = in.PhoneNumber
	guard.HomeResidence = in.HomeResidence

	if err := s.db.Save(&guard).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	s.log.Info("guard updated", zap.Uint("guard_id", guard.ID))
	s.notifier.Publish(notify.Event{Entity: "guard", ID: guard.ID, Action: "update"})
	return &guard, nil
}

func (s *Store) GuardByID(id uint) (*models.Guard, error) {
	var guard models.Guard
	err := s.db.
		Preload("Assignments").
		Preload("Assignments.Post").
		Preload("Assignments.Post.Client").
		First(&guard, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("guard", id)
		}
		return nil, apperr.Storage(err)
	}
	return &guard, nil
}

// DeleteGuard удаляет охранника вместе с его назначениями.
func (s *Store) DeleteGuard(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var guard models.Guard
		if err := tx.First(&guard, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("guard", id)
			}
			return apperr.Storage(err)
		}

		if err := tx.Where("guard_id = ?", id).
			Delete(&models.Assignment{}).Error; err != nil {
			return apperr.Storage(err)
		}
		if err := tx.Delete(&models.Guard{}, id).Error; err != nil {
			return apperr.Storage(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("guard deleted", zap.Uint("guard_id", id))
	s.notifier.Publish(notify.Event{Entity: "guard", ID: id, Action: "delete"})
	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
