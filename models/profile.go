package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the per-account debate statistics. It is created together
// with the User and mutated only through the statistics update on debate
// completion, which increments the winner counter and TotalDebates in a
// single atomic operation so TotalDebates == AiWins + UserWins always holds.
type Profile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	AiWins       int                `bson:"aiWins" json:"aiWins"`
	UserWins     int                `bson:"userWins" json:"userWins"`
	TotalDebates int                `bson:"totalDebates" json:"totalDebates"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// WinRate returns the user's win percentage, rounded to two decimals.
func (p *Profile) WinRate() float64 {
	if p.TotalDebates == 0 {
		return 0
	}
	rate := float64(p.UserWins) / float64(p.TotalDebates) * 100
	return math.Round(rate*100) / 100
}
