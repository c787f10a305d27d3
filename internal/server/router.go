package server

import (
	"net/http"

	"topsec-backend/internal/config"
	"topsec-backend/internal/handlers"
	"topsec-backend/internal/middleware"
	"topsec-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("topsec_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	// АУДИТ — открытый терминал событий, его читает фронтенд без сессии
	r.GET("/audit", handlers.ListAuditLogs)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// изменения — только admin / operator
	canEdit := middleware.RequireRole(models.RoleAdmin, models.RoleOperator)

	// КЛИЕНТЫ
	auth.GET("/clients", handlers.ListClients)
	auth.POST("/clients", canEdit, handlers.CreateClient)
	auth.DELETE("/clients/:id", canEdit, handlers.DeleteClient)

	// ПОСТЫ
	auth.GET("/posts", handlers.ListPosts)
	auth.GET("/posts/:id", handlers.GetPost)
	auth.POST("/posts", canEdit, handlers.CreatePost)

	// ОХРАННИКИ
	auth.GET("/guards", handlers.ListGuards)
	auth.GET("/guards/:id", handlers.GetGuard)
	auth.POST("/guards", canEdit, handlers.CreateGuard)
	auth.PATCH("/guards/:id", canEdit, handlers.UpdateGuard)
	auth.DELETE("/guards/:id", canEdit, handlers.DeleteGuard)

	// НАЗНАЧЕНИЯ
	auth.GET("/posts/:id/guards", handlers.ListPostAssignments)
	auth.GET("/guards/:id/assignments", handlers.ListGuardAssignments)
	auth.POST("/posts/:id/guards/:guard_id", canEdit, handlers.AssignGuardToPost)
	auth.PATCH("/posts/:id/assign", canEdit, handlers.ReassignGuard)
	auth.DELETE("/guards/:id/assignments/:shift", canEdit, handlers.UnassignGuard)

	// СВОДКИ ДЛЯ ДАШБОРДА
	auth.GET("/roster/unassigned-guards", handlers.UnassignedGuards)
	auth.GET("/roster/unmanned-posts", handlers.UnmannedPosts)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
