package routes

import (
	"debato/controllers"
	"debato/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupDebateRoutes wires the debate lifecycle endpoints. Everything here is
// owner-scoped: guests and accounts both pass through, the service layer
// filters by the resolved owner. History is account-only.
func SetupDebateRoutes(router *gin.RouterGroup) {
	debates := router.Group("/debates")
	{
		debates.GET("/history", middlewares.RequireAccount(), controllers.DebateHistory)
		debates.POST("", controllers.CreateDebate)
		debates.GET("/:id", controllers.GetDebate)
		debates.PATCH("/:id", controllers.PatchDebate)
		debates.POST("/:id/messages", controllers.PostMessage)
		debates.POST("/:id/ai-turn", controllers.AiTurn)
	}
}
