package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type chatMessageRepo struct {
	collection *mongo.Collection
}

func NewChatMessageRepository(db *DB) repo.ChatMessageRepository {
	return &chatMessageRepo{
		collection: db.Database.Collection("chat_messages"),
	}
}

func (r *chatMessageRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *chatMessageRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count chat messages: %w", err)
	}
	return count, nil
}
