package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"topsec-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type assignRequest struct {
	Shift         string     `json:"shift"`
	EffectiveDate *time.Time `json:"effectiveDate"`
}

// AssignGuardToPost — развёртывание охранника на пост.
// POST /posts/:id/guards/:guard_id
func AssignGuardToPost(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	guardID, ok := parseID(c, "guard_id")
	if !ok {
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	shift := models.Shift(strings.ToUpper(strings.TrimSpace(req.Shift)))
	a, err := Engine.Assign(guardID, postID, shift, req.EffectiveDate)
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "assign", fmt.Sprintf("Guard %d deployed to post %d (%s shift)", guardID, postID, shift))
	c.JSON(http.StatusCreated, a)
}

type reassignRequest struct {
	GuardID       uint       `json:"guardId"`
	Shift         string     `json:"shift"`
	EffectiveDate *time.Time `json:"effectiveDate"`
}

// ReassignGuard — перевод охранника на этот пост с его текущего.
// PATCH /posts/:id/assign
func ReassignGuard(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.GuardID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "guardId is required"})
		return
	}

	shift := models.Shift(strings.ToUpper(strings.TrimSpace(req.Shift)))
	a, err := Engine.Reassign(req.GuardID, postID, shift, req.EffectiveDate)
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "reassign", fmt.Sprintf("Guard %d redeployed to post %d (%s shift)", req.GuardID, postID, shift))
	c.JSON(http.StatusOK, a)
}

// UnassignGuard — снятие охранника со смены.
// DELETE /guards/:id/assignments/:shift
func UnassignGuard(c *gin.Context) {
	guardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	shift := models.Shift(strings.ToUpper(strings.TrimSpace(c.Param("shift"))))
	if err := Engine.Unassign(guardID, shift); err != nil {
		respondError(c, err)
		return
	}

	audit(c, "unassign", fmt.Sprintf("Guard %d released from %s shift", guardID, shift))
	c.Status(http.StatusNoContent)
}

// ListPostAssignments — действующие назначения поста по сменам.
// GET /posts/:id/guards
func ListPostAssignments(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	// пост должен существовать, пустой список не то же самое, что 404
	if _, err := Dir.PostByID(postID); err != nil {
		respondError(c, err)
		return
	}

	list, err := Engine.ListActiveForPost(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListGuardAssignments — действующие назначения охранника.
// GET /guards/:id/assignments
func ListGuardAssignments(c *gin.Context) {
	guardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := Dir.GuardByID(guardID); err != nil {
		respondError(c, err)
		return
	}

	list, err := Engine.ListActiveForGuard(guardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
