package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UnassignedGuards — охранники без назначений в обеих сменах.
func UnassignedGuards(c *gin.Context) {
	guards, err := Roster.UnassignedGuards()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guards)
}

// UnmannedPosts — посты без охраны в обеих сменах.
func UnmannedPosts(c *gin.Context) {
	posts, err := Roster.UnmannedPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
