package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"debato/middlewares"
	"debato/models"
	"debato/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateDebateRequest struct {
	TopicID        string `json:"topicId" binding:"required"`
	Difficulty     string `json:"difficulty" binding:"required"`
	TotalTimeLimit int    `json:"totalTimeLimit" binding:"required"`
}

type PatchDebateRequest struct {
	Action string `json:"action" binding:"required"`
	Winner string `json:"winner"`
}

type PostMessageRequest struct {
	Sender       string   `json:"sender"`
	Content      string   `json:"content" binding:"required"`
	ResponseTime *float64 `json:"responseTime"`
}

type AiTurnRequest struct {
	UserMessage string `json:"userMessage"`
}

type MessageResponse struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime *float64  `json:"responseTime,omitempty"`
}

type DebateResponse struct {
	ID                string            `json:"id"`
	UserID            string            `json:"userId,omitempty"`
	SessionToken      string            `json:"sessionToken"`
	TopicID           string            `json:"topicId"`
	TopicTitle        string            `json:"topicTitle,omitempty"`
	TopicDescription  string            `json:"topicDescription,omitempty"`
	CategoryName      string            `json:"categoryName,omitempty"`
	Difficulty        string            `json:"difficulty"`
	TotalTimeLimit    int               `json:"totalTimeLimit"`
	ReplyTimeLimit    int               `json:"replyTimeLimit"`
	Status            string            `json:"status"`
	Winner            string            `json:"winner"`
	CreatedAt         time.Time         `json:"createdAt"`
	StartedAt         *time.Time        `json:"startedAt,omitempty"`
	EndedAt           *time.Time        `json:"endedAt,omitempty"`
	UserMessagesCount int               `json:"userMessagesCount"`
	AiMessagesCount   int               `json:"aiMessagesCount"`
	Duration          float64           `json:"duration"`
	IsGuest           bool              `json:"isGuest"`
	Messages          []MessageResponse `json:"messages,omitempty"`
}

func toMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:           m.ID.Hex(),
		Sender:       m.Sender,
		Content:      m.Content,
		Timestamp:    m.Timestamp,
		ResponseTime: m.ResponseTime,
	}
}

func toDebateResponse(d *models.Debate, topic *models.Topic, category *models.Category, messages []models.Message) DebateResponse {
	resp := DebateResponse{
		ID:                d.ID.Hex(),
		SessionToken:      d.SessionToken,
		TopicID:           d.TopicID.Hex(),
		Difficulty:        d.Difficulty,
		TotalTimeLimit:    d.TotalTimeLimit,
		ReplyTimeLimit:    d.ReplyTimeLimit,
		Status:            d.Status,
		Winner:            d.Winner,
		CreatedAt:         d.CreatedAt,
		StartedAt:         d.StartedAt,
		EndedAt:           d.EndedAt,
		UserMessagesCount: d.UserMessagesCount,
		AiMessagesCount:   d.AiMessagesCount,
		Duration:          d.DurationMinutes(),
		IsGuest:           d.IsGuest(),
	}
	if d.UserID != nil {
		resp.UserID = d.UserID.Hex()
	}
	if topic != nil {
		resp.TopicTitle = topic.Title
		resp.TopicDescription = topic.Description
	}
	if category != nil {
		resp.CategoryName = category.Name
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(&messages[i]))
	}
	return resp
}

// respondServiceError maps a service failure onto the HTTP taxonomy.
// Unexpected failures are logged and surface as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
	case errors.Is(err, services.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, gin.H{"error": "Guest users can only have one free debate. Please register to continue."})
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many AI turn requests, slow down"})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// debateWithTopic decorates a debate with its topic and category for the
// response body; lookup failures degrade to the bare debate.
func debateWithTopic(c *gin.Context, d *models.Debate, messages []models.Message) DebateResponse {
	topic, err := services.GetTopic(c.Request.Context(), d.TopicID)
	if err != nil {
		return toDebateResponse(d, nil, nil, messages)
	}
	category, err := services.GetCategory(c.Request.Context(), topic.CategoryID)
	if err != nil {
		return toDebateResponse(d, topic, nil, messages)
	}
	return toDebateResponse(d, topic, category, messages)
}

// CreateDebate starts a new debate session in setup state.
func CreateDebate(c *gin.Context) {
	var req CreateDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	topicID, err := primitive.ObjectIDFromHex(req.TopicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic id"})
		return
	}

	owner := middlewares.CurrentOwner(c)
	debate, err := services.CreateDebate(c.Request.Context(), owner, topicID, req.Difficulty, req.TotalTimeLimit, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, debateWithTopic(c, debate, nil))
}

// GetDebate returns a debate with its message transcript.
func GetDebate(c *gin.Context) {
	debateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
		return
	}

	owner := middlewares.CurrentOwner(c)
	debate, err := services.GetDebate(c.Request.Context(), owner, debateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	messages, err := services.ListMessages(c.Request.Context(), debate.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, debateWithTopic(c, debate, messages))
}

// PatchDebate drives the state machine: start, end or abandon.
func PatchDebate(c *gin.Context) {
	var req PatchDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.Action != "start" && req.Action != "end" && req.Action != "abandon" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	debateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
		return
	}

	owner := middlewares.CurrentOwner(c)
	var debate *models.Debate
	switch req.Action {
	case "start":
		debate, err = services.StartDebate(c.Request.Context(), owner, debateID)
	case "end":
		debate, err = services.EndDebate(c.Request.Context(), owner, debateID, req.Winner)
	case "abandon":
		debate, err = services.AbandonDebate(c.Request.Context(), owner, debateID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, debateWithTopic(c, debate, nil))
}

// PostMessage appends a user (or pre-generated ai) message to a debate.
func PostMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if _, err := services.ValidateMessageContent(req.Content); err != nil {
		respondServiceError(c, err)
		return
	}

	debateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
		return
	}

	owner := middlewares.CurrentOwner(c)
	message, err := services.PostMessage(c.Request.Context(), owner, debateID, req.Sender, req.Content, req.ResponseTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(message))
}

// AiTurn asks the AI opponent for its counter-argument. It falls back to
// the last stored user message when the request carries none.
func AiTurn(c *gin.Context) {
	var req AiTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	debateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
		return
	}

	owner := middlewares.CurrentOwner(c)
	message, debate, err := services.RequestAiTurn(c.Request.Context(), owner, debateID, req.UserMessage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": toMessageResponse(message),
		"debateStatus": gin.H{
			"userMessages":  debate.UserMessagesCount,
			"aiMessages":    debate.AiMessagesCount,
			"totalMessages": debate.UserMessagesCount + debate.AiMessagesCount,
		},
	})
}

// DebateHistory lists the authenticated account's debates, newest first.
func DebateHistory(c *gin.Context) {
	owner := middlewares.CurrentOwner(c)
	debates, err := services.ListDebates(c.Request.Context(), owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	history := make([]DebateResponse, 0, len(debates))
	for i := range debates {
		history = append(history, debateWithTopic(c, &debates[i], nil))
	}
	c.JSON(http.StatusOK, history)
}
