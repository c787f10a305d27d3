package database

import "topsec-backend/internal/models"

// CreateAuditLog — запись в журнал аудита. Пишем fire-and-forget:
// мутация уже прошла, из-за аудита её не откатываем.
func CreateAuditLog(userID uint, action, description, ipAddress string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   ipAddress,
	}
	_ = DB.Create(&record).Error
}
