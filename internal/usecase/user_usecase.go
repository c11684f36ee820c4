package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/notify"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"github.com/trooper-recruit/engage-api/pkg/util"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const notifyTimeout = 10 * time.Second

type userUsecase struct {
	userRepo  repo.UserRepository
	badgeRepo repo.BadgeRepository
	notifier  notify.Notifier
}

func NewUserUsecase(
	userRepo repo.UserRepository,
	badgeRepo repo.BadgeRepository,
	notifier notify.Notifier,
) UserUsecase {
	return &userUsecase{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		notifier:  notifier,
	}
}

func (uc *userUsecase) Register(ctx context.Context, params RegisterParams) (*models.UserWithBadges, error) {
	user := &models.User{
		Name:  strings.TrimSpace(params.Name),
		Email: strings.ToLower(strings.TrimSpace(params.Email)),
		Phone: strings.TrimSpace(params.Phone),
	}

	stored, created, err := uc.userRepo.UpsertByEmail(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	if created {
		uc.notifyAsync(ctx, stored, uc.notifier.RegistrationReceived)
	}

	if params.IsApplying {
		applied, transitioned, err := uc.userRepo.MarkApplied(ctx, stored.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to mark applied: %w", err)
		}
		stored = applied
		if transitioned {
			uc.notifyAsync(ctx, stored, uc.notifier.ApplicationStarted)
		}
	}

	return uc.finish(ctx, stored)
}

func (uc *userUsecase) GetUser(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withBadges(ctx, user)
}

func (uc *userUsecase) RecordParticipation(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error) {
	return uc.increment(ctx, id, repo.CounterParticipation)
}

func (uc *userUsecase) RecordReferral(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error) {
	return uc.increment(ctx, id, repo.CounterReferral)
}

func (uc *userUsecase) RecordDownload(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error) {
	return uc.increment(ctx, id, repo.CounterDownload)
}

func (uc *userUsecase) Apply(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error) {
	user, transitioned, err := uc.userRepo.MarkApplied(ctx, id)
	if err != nil {
		return nil, err
	}
	if transitioned {
		uc.notifyAsync(ctx, user, uc.notifier.ApplicationStarted)
	}
	return uc.finish(ctx, user)
}

func (uc *userUsecase) CompleteApplication(ctx context.Context, id primitive.ObjectID) (*models.UserWithBadges, error) {
	user, err := uc.userRepo.MarkApplicationCompleted(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.finish(ctx, user)
}

func (uc *userUsecase) increment(ctx context.Context, id primitive.ObjectID, field string) (*models.UserWithBadges, error) {
	user, err := uc.userRepo.IncrementCounter(ctx, id, field, 1)
	if err != nil {
		return nil, err
	}
	return uc.finish(ctx, user)
}

// finish persists any newly earned badges for the user's current counters
// and returns the decorated read shape.
func (uc *userUsecase) finish(ctx context.Context, user *models.User) (*models.UserWithBadges, error) {
	if err := uc.syncBadges(ctx, user); err != nil {
		return nil, err
	}
	return uc.withBadges(ctx, user)
}

func (uc *userUsecase) syncBadges(ctx context.Context, user *models.User) error {
	for _, badgeType := range ComputeBadges(countersOf(user)) {
		if err := uc.badgeRepo.Award(ctx, user.ID, badgeType); err != nil {
			return fmt.Errorf("failed to sync badges: %w", err)
		}
	}
	return nil
}

func (uc *userUsecase) withBadges(ctx context.Context, user *models.User) (*models.UserWithBadges, error) {
	badges, err := uc.badgeRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	return &models.UserWithBadges{
		User:   *user,
		Badges: badgeMap(badges),
	}, nil
}

// notifyAsync fires a notification without blocking or failing the
// request. The mail context is detached from the request so an impatient
// browser does not cancel the send.
func (uc *userUsecase) notifyAsync(ctx context.Context, user *models.User, send func(context.Context, *models.User) error) {
	go func() {
		notifyCtx, cancel := util.NewTimeoutContext(ctx, notifyTimeout)
		defer cancel()

		if err := send(notifyCtx, user); err != nil {
			log.Warnw(notifyCtx, "admin notification failed", "error", err, "user_id", user.ID.Hex())
		}
	}()
}

var allBadgeTypes = []models.BadgeType{
	models.BadgeWritten,
	models.BadgeOral,
	models.BadgePhysical,
	models.BadgePolygraph,
	models.BadgePsychological,
	models.BadgeFull,
	models.BadgeChatParticipation,
	models.BadgeFirstResponse,
	models.BadgeApplicationStarted,
	models.BadgeApplicationCompleted,
	models.BadgeFrequentUser,
	models.BadgeResourceDownloader,
}

// badgeMap renders the badge rows as the type→held map the frontend
// expects, with unearned types present as false.
func badgeMap(badges []*models.Badge) map[models.BadgeType]bool {
	m := make(map[models.BadgeType]bool, len(allBadgeTypes))
	for _, t := range allBadgeTypes {
		m[t] = false
	}
	for _, b := range badges {
		m[b.Type] = true
	}
	return m
}
