package controllers

import (
	"errors"
	"log"
	"net/http"

	"debato/middlewares"
	"debato/services"

	"github.com/gin-gonic/gin"
)

const recentDebatesLimit = 5

// Dashboard assembles the landing data for the caller: the topic catalog
// plus either the account's scoreboard and recent debates, or the guest's
// session state and remaining quota.
func Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	owner := middlewares.CurrentOwner(c)

	categories, err := services.ListActiveCategories(ctx)
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}
	if categories == nil {
		categories = []services.CategoryWithCount{}
	}
	data := gin.H{"availableCategories": categories}

	if owner.IsGuest {
		session, err := services.GetOrCreateGuestSession(ctx, owner.SessionToken, c.ClientIP())
		if err != nil {
			log.Printf("Failed to resolve guest session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		data["guestSession"] = session
		data["canDebate"] = !session.HasUsedFreeDebate
		c.JSON(http.StatusOK, data)
		return
	}

	profile, err := services.GetProfile(ctx, owner.UserID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		log.Printf("Failed to fetch profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}
	if profile != nil {
		data["userProfile"] = profile
		data["scoreboard"] = gin.H{
			"userWins":     profile.UserWins,
			"aiWins":       profile.AiWins,
			"totalDebates": profile.TotalDebates,
			"winRate":      profile.WinRate(),
		}
	}

	debates, err := services.ListDebates(ctx, owner)
	if err != nil {
		log.Printf("Failed to list debates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}
	if len(debates) > recentDebatesLimit {
		debates = debates[:recentDebatesLimit]
	}
	recent := make([]DebateResponse, 0, len(debates))
	for i := range debates {
		recent = append(recent, debateWithTopic(c, &debates[i], nil))
	}
	data["recentDebates"] = recent

	c.JSON(http.StatusOK, data)
}
