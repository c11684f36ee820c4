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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type badgeRepo struct {
	collection *mongo.Collection
}

func NewBadgeRepository(db *DB) repo.BadgeRepository {
	return &badgeRepo{
		collection: db.Database.Collection("badges"),
	}
}

func (r *badgeRepo) Award(ctx context.Context, userID primitive.ObjectID, badgeType models.BadgeType) error {
	filter := bson.M{"user_id": userID, "type": badgeType}
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"type":       badgeType,
			"created_at": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// The unique index can race two upserts into a duplicate-key error;
		// the badge exists either way.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to award badge %s: %w", badgeType, err)
	}
	return nil
}

func (r *badgeRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Badge, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *badgeRepo) ListByUsers(ctx context.Context, userIDs []primitive.ObjectID) ([]*models.Badge, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
}

func (r *badgeRepo) list(ctx context.Context, filter bson.M) ([]*models.Badge, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer cursor.Close(ctx)

	var badges []*models.Badge
	for cursor.Next(ctx) {
		var badge models.Badge
		if err := cursor.Decode(&badge); err != nil {
			return nil, fmt.Errorf("failed to decode badge: %w", err)
		}
		badges = append(badges, &badge)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return badges, nil
}
