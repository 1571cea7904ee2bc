package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"debato/middlewares"
	"debato/services"

	"github.com/gin-gonic/gin"
)

type ProfileResponse struct {
	User         UserInfo  `json:"user"`
	AiWins       int       `json:"aiWins"`
	UserWins     int       `json:"userWins"`
	TotalDebates int       `json:"totalDebates"`
	WinRate      float64   `json:"winRate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetProfile returns the authenticated account's statistics profile.
func GetProfile(c *gin.Context) {
	owner := middlewares.CurrentOwner(c)

	user, err := services.GetUser(c.Request.Context(), owner.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile, err := services.GetProfile(c.Request.Context(), owner.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("Failed to fetch profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User:         UserInfo{ID: user.ID.Hex(), Username: user.Username, Email: user.Email},
		AiWins:       profile.AiWins,
		UserWins:     profile.UserWins,
		TotalDebates: profile.TotalDebates,
		WinRate:      profile.WinRate(),
		CreatedAt:    profile.CreatedAt,
	})
}
