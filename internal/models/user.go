package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name" validate:"required"`
	Email                string             `bson:"email" json:"email" validate:"required,email"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ParticipationCount   int                `bson:"participation_count" json:"participation_count"`
	ReferralCount        int                `bson:"referral_count" json:"referral_count"`
	DownloadCount        int                `bson:"download_count" json:"download_count"`
	ChatCount            int                `bson:"chat_count" json:"chat_count"`
	HasApplied           bool               `bson:"has_applied" json:"has_applied"`
	ApplicationCompleted bool               `bson:"application_completed" json:"application_completed"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserWithBadges is the read shape returned by user and leaderboard
// endpoints: the stored document plus the badge map the frontend renders.
type UserWithBadges struct {
	User
	Badges map[BadgeType]bool `json:"badges"`
}
