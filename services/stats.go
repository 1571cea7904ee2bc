package services

import (
	"context"
	"fmt"

	"debato/db"
	"debato/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// profileCounterFor returns the profile field a winner increments.
func profileCounterFor(winner string) string {
	if winner == models.WinnerUser {
		return "userWins"
	}
	return "aiWins"
}

// RecordOutcome applies a debate's terminal outcome to the owner's
// statistics. Account debates bump the winner's counter and totalDebates in
// one atomic $inc; guest debates lost to the AI consume the free debate.
// A guest win updates nothing: guests carry no aggregate statistics.
// Not idempotent; callers rely on the lifecycle guard to fire it once.
func RecordOutcome(ctx context.Context, debate *models.Debate, winner string) error {
	if debate.UserID != nil {
		_, err := db.ProfilesCollection.UpdateOne(ctx,
			bson.M{"userId": *debate.UserID},
			bson.M{"$inc": bson.M{profileCounterFor(winner): 1, "totalDebates": 1}})
		if err != nil {
			return fmt.Errorf("failed to update profile statistics: %w", err)
		}
		return nil
	}
	if winner == models.WinnerAI {
		return ConsumeGuestQuota(ctx, debate.SessionToken)
	}
	return nil
}

// GetProfile fetches the statistics profile for an account.
func GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := db.ProfilesCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}
