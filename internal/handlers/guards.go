package handlers

import (
	"net/http"

	"topsec-backend/internal/directory"

	"github.com/gin-gonic/gin"
)

func ListGuards(c *gin.Context) {
	guards, err := Roster.Guards(c.Query("client"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guards)
}

func GetGuard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	guard, err := Dir.GuardByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guard)
}

type guardRequest struct {
	Name          string `json:"name"`
	IDNumber      string `json:"idNumber"`
	PhoneNumber   string `json:"phoneNumber"`
	HomeResidence string `json:"homeResidence"`
}

func CreateGuard(c *gin.Context) {
	var req guardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	guard, err := Dir.CreateGuard(directory.GuardInput{
		Name:          req.Name,
		IDNumber:      req.IDNumber,
		PhoneNumber:   req.PhoneNumber,
		HomeResidence: req.HomeResidence,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "create", "Guard registered: "+guard.Name)
	c.JSON(http.StatusCreated, guard)
}

func UpdateGuard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req guardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	guard, err := Dir.UpdateGuard(id, directory.GuardInput{
		Name:          req.Name,
		IDNumber:      req.IDNumber,
		PhoneNumber:   req.PhoneNumber,
		HomeResidence: req.HomeResidence,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "update", "Guard updated: "+guard.Name)
	c.JSON(http.StatusOK, guard)
}

func DeleteGuard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	guard, err := Dir.GuardByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := Dir.DeleteGuard(id); err != nil {
		respondError(c, err)
		return
	}

	audit(c, "delete", "Guard removed: "+guard.Name)
	c.Status(http.StatusNoContent)
}
