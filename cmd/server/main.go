package main

import (
	"log"
	"strconv"

	"debato/config"
	"debato/db"
	"debato/middlewares"
	"debato/routes"
	"debato/services"
	"debato/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiryMinutes(cfg.JWT.ExpiryMinutes)

	services.InitAIService(cfg)
	if err := services.InitRateLimiter(cfg.Redis.URI); err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Seed the topic catalog when empty
	utils.SeedTopicCatalog()

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Every API request resolves to an Owner: an account from its token or
	// a guest from its session cookie.
	api := router.Group("/api")
	api.Use(middlewares.Identity())
	{
		routes.SetupAuthRoutes(api)
		routes.SetupCatalogRoutes(api)
		routes.SetupDebateRoutes(api)
	}

	return router
}
