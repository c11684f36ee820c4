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

type userRepo struct {
	collection *mongo.Collection
}

func NewUserRepository(db *DB) repo.UserRepository {
	return &userRepo{
		collection: db.Database.Collection("users"),
	}
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepo) UpsertByEmail(ctx context.Context, user *models.User) (*models.User, bool, error) {
	if user.Email == "" {
		return nil, false, fmt.Errorf("user must have an email for upsert")
	}
	now := time.Now()

	set := bson.M{
		"name":       user.Name,
		"updated_at": now,
	}
	if user.Phone != "" {
		set["phone"] = user.Phone
	}
	// has_applied only ever transitions to true through the upsert.
	if user.HasApplied {
		set["has_applied"] = true
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"email":                 user.Email,
			"participation_count":   0,
			"referral_count":        0,
			"download_count":        0,
			"chat_count":            0,
			"application_completed": false,
			"created_at":            now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var before models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Decode(&before)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race against a concurrent first registration for
		// the same email; the row exists now, so rerun as a plain update.
		err = r.collection.FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Decode(&before)
	}
	created := false
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, false, fmt.Errorf("failed to upsert user: %w", err)
		}
		created = true
	}

	stored, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *userRepo) IncrementCounter(ctx context.Context, id primitive.ObjectID, field string, delta int) (*models.User, error) {
	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment %s: %w", field, err)
	}
	return &user, nil
}

func (r *userRepo) MarkApplied(ctx context.Context, id primitive.ObjectID) (*models.User, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set": bson.M{
			"has_applied": true,
			"updated_at":  time.Now(),
		},
	}

	// Filtering on has_applied=false makes the update match only when this
	// call performs the transition; the second outcome (already applied vs
	// missing) is disambiguated by the plain read below.
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "has_applied": false}, update, opts).Decode(&user)
	if err == nil {
		return &user, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, fmt.Errorf("failed to mark applied: %w", err)
	}

	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

func (r *userRepo) MarkApplicationCompleted(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set": bson.M{
			"has_applied":           true,
			"application_completed": true,
			"updated_at":            time.Now(),
		},
	}

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark application completed: %w", err)
	}
	return &user, nil
}

func (r *userRepo) TopByParticipation(ctx context.Context, limit int, applicantsOnly bool) ([]*models.User, error) {
	filter := bson.M{}
	if applicantsOnly {
		filter["has_applied"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "participation_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, &user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return users, nil
}
