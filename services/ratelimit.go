package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// AI-turn throttle: at most one generation per debate per window. The reply
// time budget is 45s at its tightest, so a legitimate client never hits it.
const (
	aiTurnWindow       = 15 * time.Second
	maxAiTurnsInWindow = 1
)

var rateLimitClient *redis.Client

// InitRateLimiter connects the AI-turn rate limiter to Redis. An empty URI
// leaves the limiter disabled.
func InitRateLimiter(uri string) error {
	if uri == "" {
		rateLimitClient = nil
		log.Println("Redis not configured, AI-turn rate limiting disabled")
		return nil
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return fmt.Errorf("failed to parse redis uri: %w", err)
	}
	rateLimitClient = redis.NewClient(opt)
	return nil
}

// AllowAiTurn checks and records one AI-turn attempt for a debate. When the
// limiter is disabled or Redis is unreachable the request is allowed; the
// throttle is protective, not load-bearing.
func AllowAiTurn(ctx context.Context, debateID string) (bool, error) {
	if rateLimitClient == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate:aiturn:%s", debateID)
	count, err := rateLimitClient.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("Rate limiter unavailable, allowing AI turn: %v", err)
		return true, nil
	}
	if count == 1 {
		rateLimitClient.Expire(ctx, key, aiTurnWindow)
	}
	return count <= maxAiTurnsInWindow, nil
}
