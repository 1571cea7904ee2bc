package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLimiter(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := rateLimitClient
	rateLimitClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rateLimitClient = prev })
	return mr
}

func TestAllowAiTurnThrottles(t *testing.T) {
	setupTestLimiter(t)
	ctx := context.Background()

	ok, err := AllowAiTurn(ctx, "debate-1")
	require.NoError(t, err)
	assert.True(t, ok, "first turn in the window is allowed")

	ok, err = AllowAiTurn(ctx, "debate-1")
	require.NoError(t, err)
	assert.False(t, ok, "second turn in the window is throttled")
}

func TestAllowAiTurnPerDebate(t *testing.T) {
	setupTestLimiter(t)
	ctx := context.Background()

	ok, _ := AllowAiTurn(ctx, "debate-1")
	assert.True(t, ok)

	ok, _ = AllowAiTurn(ctx, "debate-2")
	assert.True(t, ok, "the window is scoped per debate")
}

func TestAllowAiTurnWindowExpires(t *testing.T) {
	mr := setupTestLimiter(t)
	ctx := context.Background()

	ok, _ := AllowAiTurn(ctx, "debate-1")
	require.True(t, ok)
	ok, _ = AllowAiTurn(ctx, "debate-1")
	require.False(t, ok)

	mr.FastForward(aiTurnWindow + time.Second)

	ok, err := AllowAiTurn(ctx, "debate-1")
	require.NoError(t, err)
	assert.True(t, ok, "a fresh window opens after expiry")
}

func TestAllowAiTurnDisabled(t *testing.T) {
	prev := rateLimitClient
	rateLimitClient = nil
	defer func() { rateLimitClient = prev }()

	for i := 0; i < 5; i++ {
		ok, err := AllowAiTurn(context.Background(), "debate-1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestInitRateLimiter(t *testing.T) {
	prev := rateLimitClient
	defer func() { rateLimitClient = prev }()

	require.NoError(t, InitRateLimiter(""))
	assert.Nil(t, rateLimitClient)

	require.NoError(t, InitRateLimiter("redis://localhost:6379/0"))
	assert.NotNil(t, rateLimitClient)

	assert.Error(t, InitRateLimiter("not a uri"))
}
