package handlers

import (
	"net/http"
	"strconv"

	"topsec-backend/internal/directory"

	"github.com/gin-gonic/gin"
)

func ListPosts(c *gin.Context) {
	var clientID uint
	if v := c.Query("client_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid client_id"})
			return
		}
		clientID = uint(id)
	}

	posts, err := Roster.Posts(clientID, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := Dir.PostByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

type createPostRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	ClientID uint   `json:"clientId"`
}

func CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	post, err := Dir.CreatePost(directory.PostInput{
		Title:    req.Title,
		Location: req.Location,
		ClientID: req.ClientID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "create", "Post opened: "+post.Title)
	c.JSON(http.StatusCreated, post)
}
