package services

import (
	"context"
	"fmt"
	"time"

	"debato/db"
	"debato/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetOrCreateGuestSession returns the guest session for a token, creating it
// on first sight. Two concurrent first requests are resolved by the unique
// index on sessionToken: the loser of the race re-reads the winner's row.
func GetOrCreateGuestSession(ctx context.Context, token, ipAddress string) (*models.GuestSession, error) {
	var session models.GuestSession
	err := db.GuestSessionsCollection.FindOne(ctx, bson.M{"sessionToken": token}).Decode(&session)
	if err == nil {
		return &session, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up guest session: %w", err)
	}

	session = models.GuestSession{
		ID:                primitive.NewObjectID(),
		SessionToken:      token,
		IPAddress:         ipAddress,
		HasUsedFreeDebate: false,
		CreatedAt:         time.Now(),
	}
	_, err = db.GuestSessionsCollection.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if err := db.GuestSessionsCollection.FindOne(ctx, bson.M{"sessionToken": token}).Decode(&session); err != nil {
				return nil, fmt.Errorf("failed to re-read guest session: %w", err)
			}
			return &session, nil
		}
		return nil, fmt.Errorf("failed to create guest session: %w", err)
	}
	return &session, nil
}

// CheckGuestQuota reports whether the guest still has the free debate
// available. The quota is only checked here, never consumed: consumption
// happens when a guest debate terminates with the AI as winner.
func CheckGuestQuota(ctx context.Context, token, ipAddress string) (bool, *models.GuestSession, error) {
	session, err := GetOrCreateGuestSession(ctx, token, ipAddress)
	if err != nil {
		return false, nil, err
	}
	return !session.HasUsedFreeDebate, session, nil
}

// ConsumeGuestQuota marks the guest's free debate as used. Never reset.
func ConsumeGuestQuota(ctx context.Context, token string) error {
	_, err := db.GuestSessionsCollection.UpdateOne(
		ctx,
		bson.M{"sessionToken": token},
		bson.M{"$set": bson.M{"hasUsedFreeDebate": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to consume guest quota: %w", err)
	}
	return nil
}
