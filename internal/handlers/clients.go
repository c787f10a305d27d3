package handlers

import (
	"net/http"
	"time"

	"topsec-backend/internal/directory"

	"github.com/gin-gonic/gin"
)

func ListClients(c *gin.Context) {
	clients, err := Roster.Clients()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

type createClientRequest struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Location      string    `json:"location"`
	ContractStart time.Time `json:"contractStart"`
	ContractEnd   time.Time `json:"contractEnd"`
}

func CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	client, err := Dir.CreateClient(directory.ClientInput{
		Name:          req.Name,
		Email:         req.Email,
		Location:      req.Location,
		ContractStart: req.ContractStart,
		ContractEnd:   req.ContractEnd,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "create", "Client registered: "+client.Name)
	c.JSON(http.StatusCreated, client)
}

func DeleteClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, err := Dir.ClientByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := Dir.DeleteClientCascade(id); err != nil {
		respondError(c, err)
		return
	}

	audit(c, "delete", "Client removed with all posts: "+client.Name)
	c.Status(http.StatusNoContent)
}
