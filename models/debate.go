package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty tags; they drive both the AI persona and the reply-time budget.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Debate session states. Completed and abandoned are terminal.
const (
	StatusSetup     = "setup"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// Winner values
const (
	WinnerUser    = "user"
	WinnerAI      = "ai"
	WinnerOngoing = "ongoing"
)

// Debate represents one debate session against the AI. UserID is nil for
// guest-owned debates; SessionToken is always set and is the guest
// correlation key (a fresh uuid for account-owned debates).
type Debate struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            *primitive.ObjectID `bson:"userId" json:"userId,omitempty"`
	SessionToken      string              `bson:"sessionToken" json:"sessionToken"`
	TopicID           primitive.ObjectID  `bson:"topicId" json:"topicId"`
	Difficulty        string              `bson:"difficulty" json:"difficulty"`
	TotalTimeLimit    int                 `bson:"totalTimeLimit" json:"totalTimeLimit"`
	ReplyTimeLimit    int                 `bson:"replyTimeLimit" json:"replyTimeLimit"`
	Status            string              `bson:"status" json:"status"`
	Winner            string              `bson:"winner" json:"winner"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	StartedAt         *time.Time          `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	EndedAt           *time.Time          `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
	UserMessagesCount int                 `bson:"userMessagesCount" json:"userMessagesCount"`
	AiMessagesCount   int                 `bson:"aiMessagesCount" json:"aiMessagesCount"`
}

// IsGuest reports whether this debate belongs to an anonymous guest.
func (d *Debate) IsGuest() bool {
	return d.UserID == nil
}

// DurationMinutes returns the elapsed debate time, 0 while it is running.
func (d *Debate) DurationMinutes() float64 {
	if d.StartedAt == nil || d.EndedAt == nil {
		return 0
	}
	return d.EndedAt.Sub(*d.StartedAt).Minutes()
}

// IsTerminalStatus reports whether a status admits no further transition.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusAbandoned
}

// ValidDifficulty reports whether d is one of the known difficulty tags.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}
