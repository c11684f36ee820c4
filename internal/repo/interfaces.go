package repo

import (
	"context"

	"github.com/trooper-recruit/engage-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is implemented by both the mongo and the in-memory store;
// the backend is chosen once at startup and call sites never branch on it.
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpsertByEmail creates the user or updates name/phone/has_applied on
	// the existing row, keyed by email. Returns the stored document and
	// whether it was newly created.
	UpsertByEmail(ctx context.Context, user *models.User) (*models.User, bool, error)
	// IncrementCounter atomically adds delta to the named counter field and
	// returns the updated document.
	IncrementCounter(ctx context.Context, id primitive.ObjectID, field string, delta int) (*models.User, error)
	// MarkApplied flips has_applied to true (one-way) and returns the
	// updated document plus whether this call did the transition.
	MarkApplied(ctx context.Context, id primitive.ObjectID) (*models.User, bool, error)
	// MarkApplicationCompleted flips application_completed (and has_applied)
	// to true, one-way.
	MarkApplicationCompleted(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// TopByParticipation returns up to limit users ordered by participation
	// count descending; applicantsOnly restricts to has_applied=true.
	TopByParticipation(ctx context.Context, limit int, applicantsOnly bool) ([]*models.User, error)
}

type BadgeRepository interface {
	// Award grants a badge if the user does not hold it yet. Idempotent.
	Award(ctx context.Context, userID primitive.ObjectID, badgeType models.BadgeType) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Badge, error)
	ListByUsers(ctx context.Context, userIDs []primitive.ObjectID) ([]*models.Badge, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Counter field names accepted by IncrementCounter.
const (
	CounterParticipation = "participation_count"
	CounterReferral      = "referral_count"
	CounterDownload      = "download_count"
	CounterChat          = "chat_count"
)
