package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdelivery "atix-backend/internal/auth/delivery"
	authusecase "atix-backend/internal/auth/usecase"
	emaildelivery "atix-backend/internal/email/delivery"
)

// Handler owns the HTTP engine and the per-feature handlers
type Handler struct {
	engine       *gin.Engine
	authUsecase  authusecase.AuthUsecase
	authHandler  *authdelivery.AuthHandler
	emailHandler *emaildelivery.EmailHandler
}

// NewHandler creates the engine and wires the routes
func NewHandler(authUsecase authusecase.AuthUsecase, authHandler *authdelivery.AuthHandler, emailHandler *emaildelivery.EmailHandler) *Handler {
	engine := gin.Default()
	engine.Use(corsMiddleware())

	h := &Handler{
		engine:       engine,
		authUsecase:  authUsecase,
		authHandler:  authHandler,
		emailHandler: emailHandler,
	}
	h.setupRoutes()
	return h
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Start runs the HTTP server on the given address
func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}
