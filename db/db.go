package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

var (
	UsersCollection         *mongo.Collection
	ProfilesCollection      *mongo.Collection
	GuestSessionsCollection *mongo.Collection
	CategoriesCollection    *mongo.Collection
	TopicsCollection        *mongo.Collection
	DebatesCollection       *mongo.Collection
	MessagesCollection      *mongo.Collection
)

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "debato"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "debato"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "debato"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	UsersCollection = MongoDatabase.Collection("users")
	ProfilesCollection = MongoDatabase.Collection("profiles")
	GuestSessionsCollection = MongoDatabase.Collection("guest_sessions")
	CategoriesCollection = MongoDatabase.Collection("categories")
	TopicsCollection = MongoDatabase.Collection("topics")
	DebatesCollection = MongoDatabase.Collection("debates")
	MessagesCollection = MongoDatabase.Collection("messages")

	return EnsureIndexes(ctx)
}

// EnsureIndexes creates the indexes the application relies on. The unique
// index on guest sessionToken backs the create-once guest session semantics;
// duplicate-key on insert means another request won the race.
func EnsureIndexes(ctx context.Context) error {
	_, err := UsersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = ProfilesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create profiles index: %w", err)
	}

	_, err = GuestSessionsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionToken", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create guest_sessions index: %w", err)
	}

	_, err = DebatesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "sessionToken", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create debates indexes: %w", err)
	}

	_, err = MessagesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "debateId", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create messages index: %w", err)
	}

	_, err = TopicsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "isActive", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create topics index: %w", err)
	}

	return nil
}
