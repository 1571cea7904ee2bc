package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"debato/config"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Global Gemini client instance. Left nil when no API key is configured;
// generation then degrades to the fallback replies.
var (
	geminiClient *genai.Client
	geminiModel  = defaultGeminiModel
)

// InitAIService initializes the Gemini client from the config. The server
// stays up without it: the adapter falls back to canned replies.
func InitAIService(cfg *config.Config) {
	if cfg.Gemini.Model != "" {
		geminiModel = cfg.Gemini.Model
	}
	if cfg.Gemini.ApiKey == "" {
		log.Println("Gemini API key not configured, AI responses will use fallback content")
		geminiClient = nil
		return
	}
	client, err := initGemini(cfg.Gemini.ApiKey)
	if err != nil {
		log.Printf("Failed to initialize Gemini client: %v", err)
		geminiClient = nil
		return
	}
	geminiClient = client
}

func initGemini(apiKey string) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{}
	if apiKey != "" {
		clientConfig.APIKey = apiKey
	}
	return genai.NewClient(context.Background(), clientConfig)
}

func generateDebateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}
	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		TopP:            genai.Ptr(float32(1)),
		TopK:            genai.Ptr(float32(1)),
		MaxOutputTokens: 2048,
	}
	resp, err := geminiClient.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), genConfig)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
