package usecase

import (
	"context"
	"errors"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/trooper-recruit/engage-api/internal/knowledge"
	"github.com/trooper-recruit/engage-api/internal/llm"
	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/ratelimit"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const fallbackAnswer = "Sorry, I couldn't look that up right now. Please try " +
	"again in a moment, or reach the recruiting office directly."

type chatUsecase struct {
	limiter   ratelimit.Limiter
	generator llm.Generator
	userRepo  repo.UserRepository
	badgeRepo repo.BadgeRepository
	msgRepo   repo.ChatMessageRepository
}

func NewChatUsecase(
	limiter ratelimit.Limiter,
	generator llm.Generator,
	userRepo repo.UserRepository,
	badgeRepo repo.BadgeRepository,
	msgRepo repo.ChatMessageRepository,
) ChatUsecase {
	return &chatUsecase{
		limiter:   limiter,
		generator: generator,
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		msgRepo:   msgRepo,
	}
}

func (uc *chatUsecase) Ask(ctx context.Context, clientIP string, userID primitive.ObjectID, question string) (*ChatAnswer, error) {
	res, err := uc.limiter.Allow(ctx, clientIP)
	if err != nil {
		// A limiter-store outage must not take the chat down; the window
		// just goes unenforced until the store is back.
		log.Warnw(ctx, "rate limiter unavailable, allowing request", "error", err)
	} else if !res.Allowed {
		log.Infow(ctx, "chat request rate limited", "client_ip", clientIP, "retry_after", res.RetryAfter.String())
		return nil, models.ErrRateLimited
	}

	// The question is logged before the completion call: the visitor sent
	// it either way, and the engagement counters follow the same rule.
	if !userID.IsZero() {
		if err := uc.recordEngagement(ctx, userID, question); err != nil {
			return nil, err
		}
	}

	sections := knowledge.Select(question)
	system := buildSystemPrompt(sections)

	text, err := uc.generator.GenerateText(ctx, system, question)
	if err != nil {
		log.Errorw(ctx, "completion API failed", "error", err)
		return &ChatAnswer{Text: fallbackAnswer, Source: "fallback"}, nil
	}

	return &ChatAnswer{Text: text, Source: sourceLabel(sections)}, nil
}

// recordEngagement persists the question and bumps the chat/participation
// counters. An unknown user is an error (chat messages belong to a user
// row); store failures past that point are logged but never cost the
// visitor their answer.
func (uc *chatUsecase) recordEngagement(ctx context.Context, userID primitive.ObjectID, question string) error {
	// The counter update doubles as the existence check; nothing is
	// persisted for a user id that matches no row.
	if _, err := uc.userRepo.IncrementCounter(ctx, userID, repo.CounterParticipation, 1); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		log.Warnw(ctx, "failed to bump participation from chat", "error", err, "user_id", userID.Hex())
		return nil
	}

	msg := &models.ChatMessage{UserID: userID, Question: question}
	if err := uc.msgRepo.Create(ctx, msg); err != nil {
		log.Warnw(ctx, "failed to persist chat message", "error", err, "user_id", userID.Hex())
	}

	user, err := uc.userRepo.IncrementCounter(ctx, userID, repo.CounterChat, 1)
	if err != nil {
		log.Warnw(ctx, "failed to bump chat count", "error", err, "user_id", userID.Hex())
		return nil
	}

	for _, badgeType := range ComputeBadges(countersOf(user)) {
		if err := uc.badgeRepo.Award(ctx, user.ID, badgeType); err != nil {
			log.Warnw(ctx, "failed to award chat badge", "error", err, "user_id", userID.Hex(), "badge", badgeType)
		}
	}
	return nil
}

func buildSystemPrompt(sections []knowledge.Section) string {
	var b strings.Builder
	b.WriteString(knowledge.Persona)
	if len(sections) == 0 {
		return b.String()
	}

	b.WriteString("\n\nReference sections:\n")
	for _, s := range sections {
		b.WriteString("\n## ")
		b.WriteString(s.Name)
		b.WriteString("\n")
		b.WriteString(s.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func sourceLabel(sections []knowledge.Section) string {
	if len(sections) == 0 {
		return "general"
	}
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return strings.Join(names, ",")
}
