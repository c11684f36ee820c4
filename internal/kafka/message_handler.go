package kafka

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageHandler interface {
	Handle(ctx context.Context, event EngagementEvent) error
}

type engagementHandler struct {
	users usecase.UserUsecase
}

func NewMessageHandler(users usecase.UserUsecase) MessageHandler {
	return &engagementHandler{users: users}
}

// Handle dispatches an event into the same usecase path the HTTP endpoints
// use. Malformed ids, unknown users, and unknown event types are logged
// and dropped rather than retried; the stream must keep moving.
func (h *engagementHandler) Handle(ctx context.Context, event EngagementEvent) error {
	userID, err := primitive.ObjectIDFromHex(event.UserID)
	if err != nil {
		log.Warnw(ctx, "skipping event with invalid user id", "user_id", event.UserID)
		return nil
	}

	switch event.Type {
	case EventParticipation:
		_, err = h.users.RecordParticipation(ctx, userID)
	case EventReferral:
		_, err = h.users.RecordReferral(ctx, userID)
	case EventDownload:
		_, err = h.users.RecordDownload(ctx, userID)
	default:
		log.Warnw(ctx, "skipping event with unknown type", "type", event.Type)
		return nil
	}

	if errors.Is(err, models.ErrNotFound) {
		log.Warnw(ctx, "skipping event for unknown user", "user_id", event.UserID, "type", event.Type)
		return nil
	}
	if err != nil {
		return fmt.Errorf("handle %s event: %w", event.Type, err)
	}
	return nil
}
