package routes

import (
	"debato/controllers"
	"debato/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes wires the read-only topic catalog plus the dashboard
// and profile endpoints.
func SetupCatalogRoutes(router *gin.RouterGroup) {
	router.GET("/categories", controllers.ListCategories)
	router.GET("/topics", controllers.ListTopics)
	router.GET("/dashboard", controllers.Dashboard)
	router.GET("/profile", middlewares.RequireAccount(), controllers.GetProfile)
}
