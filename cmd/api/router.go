package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdelivery "atix-backend/internal/auth/delivery"
)

func (h *Handler) setupRoutes() {
	api := h.engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.authHandler.Register)
		auth.POST("/login", h.authHandler.Login)
		auth.POST("/google", h.authHandler.GoogleSignIn)
		auth.POST("/refresh", h.authHandler.Refresh)
		auth.POST("/logout", h.authHandler.Logout)
	}

	emails := api.Group("/emails")
	emails.Use(authdelivery.AuthMiddleware(h.authUsecase))
	{
		emails.GET("", h.emailHandler.List)
		emails.GET("/stats", h.emailHandler.Stats)
		emails.POST("/import", h.emailHandler.ImportJSON)
		emails.POST("/import/gmail", h.emailHandler.ImportGmail)
		emails.POST("/process", h.emailHandler.Process)
		emails.GET("/kanban/tasks", h.emailHandler.BoardTasks)
		emails.POST("/kanban/move", h.emailHandler.Move)
		emails.PATCH("/:id", h.emailHandler.Update)
		emails.DELETE("/:id", h.emailHandler.DeleteOne)
		emails.DELETE("", h.emailHandler.Delete)
	}
}
