package handlers

import (
	"net/http"

	"topsec-backend/internal/database"
	"topsec-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	err := database.DB.
		Order("created_at desc, id desc").
		Limit(200).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal storage error"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
