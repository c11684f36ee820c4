package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BadgeType string

const (
	BadgeWritten              BadgeType = "written"
	BadgeOral                 BadgeType = "oral"
	BadgePhysical             BadgeType = "physical"
	BadgePolygraph            BadgeType = "polygraph"
	BadgePsychological        BadgeType = "psychological"
	BadgeFull                 BadgeType = "full"
	BadgeChatParticipation    BadgeType = "chat_participation"
	BadgeFirstResponse        BadgeType = "first_response"
	BadgeApplicationStarted   BadgeType = "application_started"
	BadgeApplicationCompleted BadgeType = "application_completed"
	BadgeFrequentUser         BadgeType = "frequent_user"
	BadgeResourceDownloader   BadgeType = "resource_downloader"
)

// Badge rows are created once per (user, type) and never updated or
// deleted; the unique index on that pair makes awarding idempotent.
type Badge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      BadgeType          `bson:"type" json:"type"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
