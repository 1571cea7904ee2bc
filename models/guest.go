package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuestSession tracks an anonymous visitor and their one free debate.
// HasUsedFreeDebate flips to true exactly once, when a guest debate
// terminates with the AI as winner, and is never reset.
type GuestSession struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionToken      string             `bson:"sessionToken" json:"sessionToken"`
	IPAddress         string             `bson:"ipAddress" json:"ipAddress"`
	HasUsedFreeDebate bool               `bson:"hasUsedFreeDebate" json:"hasUsedFreeDebate"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
