package controllers

import (
	"log"
	"net/http"

	"debato/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListCategories returns the active debate categories with topic counts.
func ListCategories(c *gin.Context) {
	categories, err := services.ListActiveCategories(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []services.CategoryWithCount{}
	}
	c.JSON(http.StatusOK, categories)
}

// ListTopics returns active topics, filtered by the optional category and
// difficulty query parameters.
func ListTopics(c *gin.Context) {
	var categoryID *primitive.ObjectID
	if raw := c.Query("category"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		categoryID = &id
	}

	topics, err := services.ListActiveTopics(c.Request.Context(), categoryID, c.Query("difficulty"))
	if err != nil {
		log.Printf("Failed to list topics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch topics"})
		return
	}
	c.JSON(http.StatusOK, topics)
}
