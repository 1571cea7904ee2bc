package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"debato/models"
)

// historyWindow is how many trailing messages the prompt carries.
const historyWindow = 4

// Fallback replies. An AI turn must always produce a message: when the
// client is down we use the offline line, when a live call fails we ask the
// user to rephrase instead of surfacing the error.
const (
	fallbackOffline = "I'm currently unable to connect to my AI core. Please try again later."
	fallbackError   = "I'm having a bit of trouble formulating a response right now. Could you please rephrase your argument?"
)

// temperatures maps difficulty to generation temperature; harder opponents
// get more assertive, complex output.
var temperatures = map[string]float32{
	models.DifficultyEasy:   0.7,
	models.DifficultyMedium: 0.85,
	models.DifficultyHard:   1.0,
}

// TemperatureFor returns the generation temperature for a difficulty.
func TemperatureFor(difficulty string) float32 {
	if t, ok := temperatures[difficulty]; ok {
		return t
	}
	return temperatures[models.DifficultyEasy]
}

var difficultyPersonas = map[string]string{
	models.DifficultyEasy:   "Your persona is that of a friendly beginner. Use simple language and make one clear, straightforward point. Avoid complex vocabulary and concepts. Your goal is to have an accessible discussion.",
	models.DifficultyMedium: "Your persona is that of a knowledgeable peer. Your arguments should be well-reasoned and logical. You can introduce related concepts or general evidence to support your point. Your goal is a balanced, intelligent debate.",
	models.DifficultyHard:   "Your persona is that of an expert debater. Your arguments should be sharp, analytical, and directly challenge the user's logic. You can point out fallacies, use advanced vocabulary, and introduce complex, multi-layered counter-arguments. Your goal is to win the debate decisively.",
}

// buildPrompt assembles the debate prompt: topic, difficulty persona, the
// most recent history, and the user's latest argument.
func buildPrompt(userMessage, topic, difficulty string, history []models.Message) string {
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	var sb strings.Builder
	for _, msg := range recent {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", strings.ToUpper(msg.Sender), msg.Content))
	}

	return fmt.Sprintf(`You are Debato AI, a formidable and intelligent debate opponent.
The topic of this debate is: "%s"

**Your Persona and Instructions for this round (Difficulty: %s):**
%s

**General Rules:**
1. Analyze the user's last message and the conversation history.
2. You must take an opposing stance to the user.
3. Generate a strong, concise counter-argument based on your persona. Your response must be short, around 2-4 sentences.
4. Do not agree with the user or concede points.

---
CONVERSATION HISTORY (Most recent messages):
%s
USER'S LATEST ARGUMENT: "%s"
---

Now, generate your counter-argument based on your assigned persona and instructions:
`, topic, strings.ToUpper(difficulty), difficultyPersonas[difficulty], sb.String(), userMessage)
}

// GenerateResponse produces the AI's counter-argument and the measured
// response time in seconds. It never fails: adapter problems degrade to a
// fallback reply with the elapsed time still reported (0 when the client
// was never configured).
func GenerateResponse(ctx context.Context, userMessage, topic, difficulty string, history []models.Message) (string, float64) {
	if geminiClient == nil {
		return fallbackOffline, 0
	}

	start := time.Now()
	prompt := buildPrompt(userMessage, topic, difficulty, history)
	content, err := generateDebateText(ctx, prompt, TemperatureFor(difficulty))
	elapsed := roundSeconds(time.Since(start))
	if err != nil || content == "" {
		return fallbackError, elapsed
	}
	return content, elapsed
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
