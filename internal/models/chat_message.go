package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is an append-only log of visitor questions. Answers are not
// stored; the relay returns them to the browser only.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Question  string             `bson:"question" json:"question"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
