package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"debato/db"
	"debato/models"
	"debato/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegisterUser creates the account and its statistics profile in one
// synchronous operation; the profile exists from the moment the account
// does. A duplicate email surfaces as ErrEmailTaken via the unique index.
func RegisterUser(ctx context.Context, username, email, password string) (*models.User, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if _, err := db.UsersCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := models.Profile{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if _, err := db.ProfilesCollection.InsertOne(ctx, profile); err != nil {
		// Roll the account back rather than leave it without statistics.
		db.UsersCollection.DeleteOne(ctx, bson.M{"_id": user.ID})
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &user, nil
}

// AuthenticateUser verifies an email/password pair.
func AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser fetches an account by id.
func GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
