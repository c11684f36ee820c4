package usecase

import (
	"context"
	"fmt"

	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BoardParticipation = "participation"
	BoardApplicants    = "applicants"

	defaultBoardLimit = 10
	maxBoardLimit     = 100
)

type leaderboardUsecase struct {
	userRepo  repo.UserRepository
	badgeRepo repo.BadgeRepository
}

func NewLeaderboardUsecase(userRepo repo.UserRepository, badgeRepo repo.BadgeRepository) LeaderboardUsecase {
	return &leaderboardUsecase{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
	}
}

func (uc *leaderboardUsecase) TopUsers(ctx context.Context, boardType string, limit int) ([]*models.UserWithBadges, error) {
	if boardType == "" {
		boardType = BoardParticipation
	}
	if boardType != BoardParticipation && boardType != BoardApplicants {
		return nil, fmt.Errorf("unknown leaderboard type %q", boardType)
	}
	if limit <= 0 {
		limit = defaultBoardLimit
	}
	if limit > maxBoardLimit {
		limit = maxBoardLimit
	}

	users, err := uc.userRepo.TopByParticipation(ctx, limit, boardType == BoardApplicants)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	ids := make([]primitive.ObjectID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	badges, err := uc.badgeRepo.ListByUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard badges: %w", err)
	}

	byUser := make(map[primitive.ObjectID][]*models.Badge, len(users))
	for _, b := range badges {
		byUser[b.UserID] = append(byUser[b.UserID], b)
	}

	rows := make([]*models.UserWithBadges, len(users))
	for i, u := range users {
		rows[i] = &models.UserWithBadges{
			User:   *u,
			Badges: badgeMap(byUser[u.ID]),
		}
	}
	return rows, nil
}
