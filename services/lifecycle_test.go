package services

import (
	"strings"
	"sync"
	"testing"

	"debato/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyTimeLimitFor(t *testing.T) {
	assert.Equal(t, 75, ReplyTimeLimitFor(models.DifficultyEasy))
	assert.Equal(t, 60, ReplyTimeLimitFor(models.DifficultyMedium))
	assert.Equal(t, 45, ReplyTimeLimitFor(models.DifficultyHard))
}

func TestValidTotalTimeLimit(t *testing.T) {
	for _, minutes := range []int{5, 10, 15, 20} {
		assert.True(t, ValidTotalTimeLimit(minutes), "%d minutes", minutes)
	}
	for _, minutes := range []int{0, 1, 7, 25, -5} {
		assert.False(t, ValidTotalTimeLimit(minutes), "%d minutes", minutes)
	}
}

func TestValidWinner(t *testing.T) {
	assert.True(t, validWinner(models.WinnerUser))
	assert.True(t, validWinner(models.WinnerAI))
	assert.False(t, validWinner(models.WinnerOngoing), "ongoing is not a terminal outcome")
	assert.False(t, validWinner("draw"))
	assert.False(t, validWinner(""))
	assert.False(t, validWinner("AI"))
}

func TestValidateMessageContent(t *testing.T) {
	content, err := ValidateMessageContent("  AI is overrated  ")
	require.NoError(t, err)
	assert.Equal(t, "AI is overrated", content, "content is trimmed")

	_, err = ValidateMessageContent("")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidateMessageContent("   \n\t ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidateMessageContent(strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, ErrValidation)

	content, err = ValidateMessageContent(strings.Repeat("a", 1000))
	require.NoError(t, err)
	assert.Len(t, content, 1000)

	// Limit counts characters, not bytes.
	_, err = ValidateMessageContent(strings.Repeat("ä", 1000))
	assert.NoError(t, err)
}

func TestLockDebateSerializes(t *testing.T) {
	const workers = 16
	var inside, max int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lockDebate("debate-1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > max {
				max = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, max, "only one goroutine may hold a debate's lock")
}

func TestLockDebateIndependentDebates(t *testing.T) {
	unlockA := lockDebate("debate-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := lockDebate("debate-b")
		unlockB()
		close(done)
	}()

	// A shared lock would deadlock here since debate-a is still held.
	<-done
}
