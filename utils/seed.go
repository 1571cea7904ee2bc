package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"debato/db"
	"debato/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type seedTopic struct {
	Title      string
	Difficulty string
}

type seedCategory struct {
	Name        string
	Description string
	Topics      []seedTopic
}

var seedCategories = []seedCategory{
	{
		Name:        "Technology",
		Description: "Debates about technology, AI, social media, and digital innovation",
		Topics: []seedTopic{
			{"AI will replace most human jobs", models.DifficultyMedium},
			{"Social media does more harm than good", models.DifficultyEasy},
			{"Privacy is dead in the digital age", models.DifficultyHard},
			{"Smartphones should be banned in schools", models.DifficultyEasy},
			{"Cryptocurrency is the future of money", models.DifficultyMedium},
		},
	},
	{
		Name:        "Education",
		Description: "Debates about learning, schools, and educational systems",
		Topics: []seedTopic{
			{"Online learning is better than traditional classroom learning", models.DifficultyEasy},
			{"College education is overrated", models.DifficultyMedium},
			{"Standardized testing should be abolished", models.DifficultyMedium},
			{"Students should choose their own curriculum", models.DifficultyHard},
			{"Homework is unnecessary for learning", models.DifficultyEasy},
		},
	},
	{
		Name:        "Environment",
		Description: "Debates about climate change, sustainability, and environmental issues",
		Topics: []seedTopic{
			{"Climate change is the most urgent global issue", models.DifficultyMedium},
			{"Nuclear energy is the solution to climate change", models.DifficultyHard},
			{"Individuals are more responsible than corporations for environmental damage", models.DifficultyMedium},
			{"Electric cars will solve transportation pollution", models.DifficultyEasy},
			{"Veganism is necessary to save the environment", models.DifficultyHard},
		},
	},
	{
		Name:        "Society",
		Description: "Debates about social issues, culture, and human behavior",
		Topics: []seedTopic{
			{"Money can buy happiness", models.DifficultyEasy},
			{"Social media influencers have too much power", models.DifficultyMedium},
			{"Working from home is better than office work", models.DifficultyEasy},
			{"Universal basic income should be implemented", models.DifficultyHard},
			{"Competitive sports are harmful to young people", models.DifficultyMedium},
		},
	},
	{
		Name:        "Politics",
		Description: "Debates about government, democracy, and political systems",
		Topics: []seedTopic{
			{"Democracy is the best form of government", models.DifficultyHard},
			{"Voting should be mandatory", models.DifficultyMedium},
			{"Politicians should have term limits", models.DifficultyMedium},
			{"Social media should be regulated by government", models.DifficultyHard},
			{"Taxes on the wealthy should be increased", models.DifficultyMedium},
		},
	},
	{
		Name:        "Health",
		Description: "Debates about healthcare, fitness, and wellness",
		Topics: []seedTopic{
			{"Healthcare should be free for everyone", models.DifficultyMedium},
			{"Fast food companies are responsible for obesity", models.DifficultyEasy},
			{"Mental health is as important as physical health", models.DifficultyEasy},
			{"Alternative medicine is as effective as conventional medicine", models.DifficultyHard},
			{"Sugar should be taxed like tobacco", models.DifficultyMedium},
		},
	},
}

// SeedTopicCatalog populates the categories and topics collections with the
// stock catalog. Skipped when categories already exist.
func SeedTopicCatalog() {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := db.CategoriesCollection.CountDocuments(dbCtx, bson.M{})
	if err != nil || count > 0 {
		return
	}

	for _, cat := range seedCategories {
		category := models.Category{
			ID:          primitive.NewObjectID(),
			Name:        cat.Name,
			Description: cat.Description,
			IsActive:    true,
		}
		if _, err := db.CategoriesCollection.InsertOne(dbCtx, category); err != nil {
			log.Printf("Failed to seed category %s: %v", cat.Name, err)
			continue
		}

		for _, t := range cat.Topics {
			topic := models.Topic{
				ID:          primitive.NewObjectID(),
				CategoryID:  category.ID,
				Title:       t.Title,
				Description: fmt.Sprintf("Debate topic: %s", t.Title),
				Difficulty:  t.Difficulty,
				IsActive:    true,
				CreatedAt:   time.Now(),
			}
			if _, err := db.TopicsCollection.InsertOne(dbCtx, topic); err != nil {
				log.Printf("Failed to seed topic %s: %v", t.Title, err)
			}
		}
	}

	log.Println("Seeded topic catalog")
}
