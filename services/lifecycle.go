package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"debato/db"
	"debato/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxMessageLength = 1000

// replyTimeLimits maps difficulty to the per-reply budget in seconds.
// Canonical server-side mapping; the old client copy of this table is not
// authoritative.
var replyTimeLimits = map[string]int{
	models.DifficultyEasy:   75,
	models.DifficultyMedium: 60,
	models.DifficultyHard:   45,
}

// totalTimeChoices are the accepted total debate lengths in minutes.
var totalTimeChoices = map[int]bool{5: true, 10: true, 15: true, 20: true}

// ReplyTimeLimitFor returns the per-reply budget in seconds for a difficulty.
func ReplyTimeLimitFor(difficulty string) int {
	return replyTimeLimits[difficulty]
}

// ValidTotalTimeLimit reports whether minutes is an accepted debate length.
func ValidTotalTimeLimit(minutes int) bool {
	return totalTimeChoices[minutes]
}

// validWinner accepts only the two real outcomes. "ongoing" and anything
// else is rejected; the original accepted arbitrary strings here, which
// silently corrupted the statistics.
func validWinner(winner string) bool {
	return winner == models.WinnerUser || winner == models.WinnerAI
}

// debateLocks serializes end/abandon per debate so two racing terminations
// cannot both record an outcome. The status-guarded update below is the
// actual single-fire guarantee; the lock keeps the outcome side effect
// ordered behind it.
var debateLocks sync.Map

func lockDebate(id string) func() {
	v, _ := debateLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateDebate validates the settings, enforces the guest quota, and creates
// a new debate in setup with winner=ongoing and zero message counts.
func CreateDebate(ctx context.Context, owner Owner, topicID primitive.ObjectID, difficulty string, totalTimeLimit int, clientIP string) (*models.Debate, error) {
	if !models.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrValidation)
	}
	if !ValidTotalTimeLimit(totalTimeLimit) {
		return nil, fmt.Errorf("%w: total time limit must be 5, 10, 15 or 20 minutes", ErrValidation)
	}

	var topic models.Topic
	err := db.TopicsCollection.FindOne(ctx, bson.M{"_id": topicID, "isActive": true}).Decode(&topic)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: unknown or inactive topic", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}

	var userID *primitive.ObjectID
	sessionToken := owner.SessionToken
	if owner.IsGuest {
		allowed, _, err := CheckGuestQuota(ctx, owner.SessionToken, clientIP)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrQuotaExceeded
		}
	} else {
		uid := owner.UserID
		userID = &uid
		// Account debates still get a session token as an internal handle.
		sessionToken = uuid.NewString()
	}

	debate := models.Debate{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		SessionToken:   sessionToken,
		TopicID:        topic.ID,
		Difficulty:     difficulty,
		TotalTimeLimit: totalTimeLimit,
		ReplyTimeLimit: ReplyTimeLimitFor(difficulty),
		Status:         models.StatusSetup,
		Winner:         models.WinnerOngoing,
		CreatedAt:      time.Now(),
	}
	if _, err := db.DebatesCollection.InsertOne(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to create debate: %w", err)
	}
	return &debate, nil
}

// GetDebate fetches a debate through the caller's owner predicate.
func GetDebate(ctx context.Context, owner Owner, debateID primitive.ObjectID) (*models.Debate, error) {
	var debate models.Debate
	err := db.DebatesCollection.FindOne(ctx, owner.DebateFilter(debateID)).Decode(&debate)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch debate: %w", err)
	}
	return &debate, nil
}

// ListDebates returns the owner's debates, newest first.
func ListDebates(ctx context.Context, owner Owner) ([]models.Debate, error) {
	cursor, err := db.DebatesCollection.Find(ctx, owner.DebateListFilter(),
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list debates: %w", err)
	}
	defer cursor.Close(ctx)

	var debates []models.Debate
	if err := cursor.All(ctx, &debates); err != nil {
		return nil, fmt.Errorf("failed to decode debates: %w", err)
	}
	return debates, nil
}

// ListMessages returns a debate's messages in timestamp order.
func ListMessages(ctx context.Context, debateID primitive.ObjectID) ([]models.Message, error) {
	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"debateId": debateID},
		options.Find().SetSort(bson.M{"timestamp": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// StartDebate moves a debate from setup to active and stamps startedAt.
// The status guard lives in the update filter, so a concurrent start loses
// cleanly.
func StartDebate(ctx context.Context, owner Owner, debateID primitive.ObjectID) (*models.Debate, error) {
	filter := owner.DebateFilter(debateID)
	filter["status"] = models.StatusSetup

	now := time.Now()
	update := bson.M{"$set": bson.M{"status": models.StatusActive, "startedAt": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var debate models.Debate
	err := db.DebatesCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&debate)
	if err == mongo.ErrNoDocuments {
		return nil, classifyTransitionMiss(ctx, owner, debateID, "debate is not in setup state")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start debate: %w", err)
	}
	return &debate, nil
}

// EndDebate completes a debate with the given winner and records the outcome
// exactly once. Allowed from setup and active.
func EndDebate(ctx context.Context, owner Owner, debateID primitive.ObjectID, winner string) (*models.Debate, error) {
	if !validWinner(winner) {
		return nil, fmt.Errorf("%w: winner must be \"user\" or \"ai\"", ErrValidation)
	}
	unlock := lockDebate(debateID.Hex())
	defer unlock()
	return terminateDebate(ctx, owner, debateID, models.StatusCompleted, winner)
}

// AbandonDebate terminates a debate from any non-terminal state. The winner
// is forced to the AI, so abandoning always counts against the user or
// guest.
func AbandonDebate(ctx context.Context, owner Owner, debateID primitive.ObjectID) (*models.Debate, error) {
	unlock := lockDebate(debateID.Hex())
	defer unlock()
	return terminateDebate(ctx, owner, debateID, models.StatusAbandoned, models.WinnerAI)
}

func terminateDebate(ctx context.Context, owner Owner, debateID primitive.ObjectID, status, winner string) (*models.Debate, error) {
	filter := owner.DebateFilter(debateID)
	filter["status"] = bson.M{"$in": []string{models.StatusSetup, models.StatusActive}}

	now := time.Now()
	update := bson.M{"$set": bson.M{"status": status, "winner": winner, "endedAt": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var debate models.Debate
	err := db.DebatesCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&debate)
	if err == mongo.ErrNoDocuments {
		return nil, classifyTransitionMiss(ctx, owner, debateID, "debate cannot be ended from current state")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to terminate debate: %w", err)
	}

	if err := RecordOutcome(ctx, &debate, winner); err != nil {
		return &debate, err
	}
	return &debate, nil
}

// classifyTransitionMiss tells a missing/foreign debate (not found) apart
// from one in the wrong state (invalid transition).
func classifyTransitionMiss(ctx context.Context, owner Owner, debateID primitive.ObjectID, reason string) error {
	err := db.DebatesCollection.FindOne(ctx, owner.DebateFilter(debateID)).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch debate: %w", err)
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, reason)
}

// ValidateMessageContent trims and checks a message body.
func ValidateMessageContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: message content is required", ErrValidation)
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return "", fmt.Errorf("%w: message too long (max %d characters)", ErrValidation, maxMessageLength)
	}
	return content, nil
}

// PostMessage appends a message to a debate and bumps the sender's counter.
// Messages are accepted in setup and active; once a debate is terminal its
// counts must never move again, so posting is refused.
func PostMessage(ctx context.Context, owner Owner, debateID primitive.ObjectID, sender, content string, responseTime *float64) (*models.Message, error) {
	content, err := ValidateMessageContent(content)
	if err != nil {
		return nil, err
	}
	if sender == "" {
		sender = models.SenderUser
	}
	if sender != models.SenderUser && sender != models.SenderAI {
		return nil, fmt.Errorf("%w: sender must be \"user\" or \"ai\"", ErrValidation)
	}

	debate, err := GetDebate(ctx, owner, debateID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalStatus(debate.Status) {
		return nil, fmt.Errorf("%w: debate has ended", ErrInvalidTransition)
	}

	return appendMessage(ctx, debate.ID, sender, content, responseTime)
}

func appendMessage(ctx context.Context, debateID primitive.ObjectID, sender, content string, responseTime *float64) (*models.Message, error) {
	message := models.Message{
		ID:           primitive.NewObjectID(),
		DebateID:     debateID,
		Sender:       sender,
		Content:      content,
		Timestamp:    time.Now(),
		ResponseTime: responseTime,
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	counter := "userMessagesCount"
	if sender == models.SenderAI {
		counter = "aiMessagesCount"
	}
	// The status guard keeps counts frozen if the debate terminated between
	// the fetch and this update.
	_, err := db.DebatesCollection.UpdateOne(ctx,
		bson.M{"_id": debateID, "status": bson.M{"$in": []string{models.StatusSetup, models.StatusActive}}},
		bson.M{"$inc": bson.M{counter: 1}})
	if err != nil {
		return nil, fmt.Errorf("failed to update message count: %w", err)
	}
	return &message, nil
}

// RequestAiTurn generates the AI's counter-argument for an active debate and
// records it as a message. Adapter failures degrade to a fallback message,
// so an AI turn never leaves the debate without a reply. Never changes the
// debate status.
func RequestAiTurn(ctx context.Context, owner Owner, debateID primitive.ObjectID, userMessage string) (*models.Message, *models.Debate, error) {
	debate, err := GetDebate(ctx, owner, debateID)
	if err != nil {
		return nil, nil, err
	}
	if debate.Status != models.StatusActive {
		return nil, nil, fmt.Errorf("%w: debate is not active", ErrInvalidTransition)
	}

	allowed, err := AllowAiTurn(ctx, debate.ID.Hex())
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, ErrRateLimited
	}

	history, err := ListMessages(ctx, debate.ID)
	if err != nil {
		return nil, nil, err
	}

	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Sender == models.SenderUser {
				userMessage = history[i].Content
				break
			}
		}
	}
	if userMessage == "" {
		return nil, nil, fmt.Errorf("%w: no user message found", ErrValidation)
	}

	topic, err := GetTopic(ctx, debate.TopicID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch debate topic: %w", err)
	}

	content, responseTime := GenerateResponse(ctx, userMessage, topic.Title, debate.Difficulty, history)

	message, err := appendMessage(ctx, debate.ID, models.SenderAI, content, &responseTime)
	if err != nil {
		return nil, nil, err
	}
	debate.AiMessagesCount++
	return message, debate, nil
}
