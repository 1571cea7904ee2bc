package services

import (
	"context"
	"fmt"

	"debato/db"
	"debato/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryWithCount is a category plus its number of active topics.
type CategoryWithCount struct {
	models.Category
	TopicsCount int `json:"topicsCount"`
}

// ListActiveCategories returns the active categories with topic counts.
func ListActiveCategories(ctx context.Context) ([]CategoryWithCount, error) {
	cursor, err := db.CategoriesCollection.Find(ctx, bson.M{"isActive": true}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var result []CategoryWithCount
	for cursor.Next(ctx) {
		var category models.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		count, err := db.TopicsCollection.CountDocuments(ctx, bson.M{"categoryId": category.ID, "isActive": true})
		if err != nil {
			return nil, fmt.Errorf("failed to count topics: %w", err)
		}
		result = append(result, CategoryWithCount{Category: category, TopicsCount: int(count)})
	}
	return result, cursor.Err()
}

// ListActiveTopics returns active topics, optionally filtered by category
// and/or difficulty.
func ListActiveTopics(ctx context.Context, categoryID *primitive.ObjectID, difficulty string) ([]models.Topic, error) {
	filter := bson.M{"isActive": true}
	if categoryID != nil {
		filter["categoryId"] = *categoryID
	}
	if difficulty != "" {
		filter["difficulty"] = difficulty
	}

	cursor, err := db.TopicsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"title": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer cursor.Close(ctx)

	var topics []models.Topic
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	return topics, nil
}

// GetTopic fetches a topic by id.
func GetTopic(ctx context.Context, topicID primitive.ObjectID) (*models.Topic, error) {
	var topic models.Topic
	err := db.TopicsCollection.FindOne(ctx, bson.M{"_id": topicID}).Decode(&topic)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}
	return &topic, nil
}

// GetCategory fetches a category by id.
func GetCategory(ctx context.Context, categoryID primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := db.CategoriesCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &category, nil
}
