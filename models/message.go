package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message senders
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is a single appended entry in a debate, ordered by timestamp.
type Message struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DebateID     primitive.ObjectID `bson:"debateId" json:"debateId"`
	Sender       string             `bson:"sender" json:"sender"`
	Content      string             `bson:"content" json:"content"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	ResponseTime *float64           `bson:"responseTime,omitempty" json:"responseTime,omitempty"`
}
