package routes

import (
	"debato/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires the account endpoints.
func SetupAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/status", controllers.AuthStatus)
	}
}
