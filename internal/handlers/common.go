package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"topsec-backend/internal/apperr"
	"topsec-backend/internal/database"
	"topsec-backend/internal/deploy"
	"topsec-backend/internal/directory"
	"topsec-backend/internal/models"
	"topsec-backend/internal/notify"
	"topsec-backend/internal/roster"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// зависимости обработчиков, выставляются один раз при сборке роутера
var (
	Dir    *directory.Store
	Engine *deploy.Engine
	Roster *roster.Roster
	zlog   *zap.Logger
)

func Setup(db *gorm.DB, n notify.Notifier, log *zap.Logger) {
	Dir = directory.NewStore(db, n, log)
	Engine = deploy.NewEngine(db, n, log)
	Roster = roster.New(db)
	zlog = log
}

// respondError переводит доменные ошибки в HTTP-статусы.
// Отказ хранилища — всегда 500, его нельзя показывать как "не найдено".
func respondError(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	var nf *apperr.NotFoundError
	var cf *apperr.ConflictError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
	case errors.As(err, &cf):
		c.JSON(http.StatusConflict, gin.H{"message": cf.Error()})
	default:
		// наружу только 500, причину — в лог
		if zlog != nil {
			zlog.Error("storage failure",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal storage error"})
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// audit — запись действия в журнал от имени текущего пользователя,
// которого в контекст положил middleware.InjectUser.
func audit(c *gin.Context, action, description string) {
	var uid uint
	if v, ok := c.Get("CurrentUser"); ok {
		if user, ok := v.(models.User); ok {
			uid = user.ID
		}
	}
	database.CreateAuditLog(uid, action, description, c.ClientIP())
}
