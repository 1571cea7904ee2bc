package middlewares

import (
	"net/http"
	"strings"

	"debato/services"
	"debato/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// OwnerContextKey is where the resolved Owner lives in the gin context.
	OwnerContextKey = "owner"
	// GuestCookieName carries the guest's opaque session token.
	GuestCookieName = "debato_session"

	guestCookieMaxAge = 30 * 24 * 60 * 60
)

// Identity resolves every request to an Owner: a registered account from a
// Bearer JWT, otherwise a guest keyed by the session cookie. A missing
// cookie gets a fresh token so the guest identity stays stable for the rest
// of the browser session. A malformed or expired token is rejected rather
// than silently downgraded to a guest.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization token format"})
				c.Abort()
				return
			}
			claims, err := utils.ParseJWTToken(parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			c.Set(OwnerContextKey, services.Owner{UserID: userID})
			c.Set("userEmail", claims.Email)
			c.Next()
			return
		}

		token, err := c.Cookie(GuestCookieName)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetCookie(GuestCookieName, token, guestCookieMaxAge, "/", "", false, true)
		}
		c.Set(OwnerContextKey, services.Owner{IsGuest: true, SessionToken: token})
		c.Next()
	}
}

// RequireAccount rejects guest callers on account-only routes.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := CurrentOwner(c)
		if owner.IsGuest {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentOwner returns the Owner the Identity middleware resolved.
func CurrentOwner(c *gin.Context) services.Owner {
	return c.MustGet(OwnerContextKey).(services.Owner)
}
