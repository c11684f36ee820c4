package usecase

import (
	"context"

	"github.com/trooper-recruit/engage-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegisterParams struct {
	Name       string
	Email      string
	Phone      string
	IsApplying bool
}

type UserUsecase interface {
	// Register creates or updates the user keyed by email (the opt-in form
	// is safe to re-submit) and fires the admin notifications.
	Register(ctx context.Context, params RegisterParams) (*models.UserWithBadges, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error)
	RecordParticipation(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error)
	RecordReferral(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error)
	RecordDownload(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error)
	Apply(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error)
	CompleteApplication(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error)
}

type LeaderboardUsecase interface {
	// TopUsers returns up to limit users ordered by participation count
	// descending. boardType "applicants" restricts to has_applied=true;
	// "participation" (or empty) includes everyone.
	TopUsers(ctx context.Context, boardType string, limit int) ([]*models.UserWithBadges, error)
}

type ChatAnswer struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type ChatUsecase interface {
	// Ask answers a visitor question through the completion API. clientIP
	// keys the rate limit; userID may be the zero ObjectID for anonymous
	// visitors, in which case nothing is persisted.
	Ask(ctx context.Context, clientIP string, userID primitive.ObjectID, question string) (*ChatAnswer, error)
}
