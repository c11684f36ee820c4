// Package memory backs the repo interfaces with mutex-guarded maps. It is
// the default store for local development and tests; nothing survives a
// restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*models.User
	byEmail  map[string]primitive.ObjectID
	badges   map[primitive.ObjectID]map[models.BadgeType]*models.Badge
	messages []*models.ChatMessage
}

func NewStore() *Store {
	return &Store{
		users:   make(map[primitive.ObjectID]*models.User),
		byEmail: make(map[string]primitive.ObjectID),
		badges:  make(map[primitive.ObjectID]map[models.BadgeType]*models.Badge),
	}
}

func NewUserRepository(s *Store) repo.UserRepository               { return (*userStore)(s) }
func NewBadgeRepository(s *Store) repo.BadgeRepository             { return (*badgeStore)(s) }
func NewChatMessageRepository(s *Store) repo.ChatMessageRepository { return (*messageStore)(s) }

type userStore Store

func (s *userStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyUser(user), nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyUser(s.users[id]), nil
}

func (s *userStore) UpsertByEmail(_ context.Context, user *models.User) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if id, ok := s.byEmail[user.Email]; ok {
		existing := s.users[id]
		existing.Name = user.Name
		if user.Phone != "" {
			existing.Phone = user.Phone
		}
		if user.HasApplied {
			existing.HasApplied = true
		}
		existing.UpdatedAt = now
		return copyUser(existing), false, nil
	}

	created := &models.User{
		ID:         primitive.NewObjectID(),
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		HasApplied: user.HasApplied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.users[created.ID] = created
	s.byEmail[created.Email] = created.ID
	return copyUser(created), true, nil
}

func (s *userStore) IncrementCounter(_ context.Context, id primitive.ObjectID, field string, delta int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	switch field {
	case repo.CounterParticipation:
		user.ParticipationCount += delta
	case repo.CounterReferral:
		user.ReferralCount += delta
	case repo.CounterDownload:
		user.DownloadCount += delta
	case repo.CounterChat:
		user.ChatCount += delta
	}
	user.UpdatedAt = time.Now()
	return copyUser(user), nil
}

func (s *userStore) MarkApplied(_ context.Context, id primitive.ObjectID) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, false, models.ErrNotFound
	}
	transitioned := !user.HasApplied
	user.HasApplied = true
	user.UpdatedAt = time.Now()
	return copyUser(user), transitioned, nil
}

func (s *userStore) MarkApplicationCompleted(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	user.HasApplied = true
	user.ApplicationCompleted = true
	user.UpdatedAt = time.Now()
	return copyUser(user), nil
}

func (s *userStore) TopByParticipation(_ context.Context, limit int, applicantsOnly bool) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		if applicantsOnly && !user.HasApplied {
			continue
		}
		users = append(users, copyUser(user))
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ParticipationCount > users[j].ParticipationCount
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type badgeStore Store

func (s *badgeStore) Award(_ context.Context, userID primitive.ObjectID, badgeType models.BadgeType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := s.badges[userID]
	if held == nil {
		held = make(map[models.BadgeType]*models.Badge)
		s.badges[userID] = held
	}
	if _, ok := held[badgeType]; ok {
		return nil
	}
	held[badgeType] = &models.Badge{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      badgeType,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *badgeStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return badgesOf(s.badges[userID]), nil
}

func (s *badgeStore) ListByUsers(_ context.Context, userIDs []primitive.ObjectID) ([]*models.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*models.Badge
	for _, id := range userIDs {
		all = append(all, badgesOf(s.badges[id])...)
	}
	return all, nil
}

type messageStore Store

func (s *messageStore) Create(_ context.Context, message *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	stored := *message
	s.messages = append(s.messages, &stored)
	return nil
}

func (s *messageStore) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, m := range s.messages {
		if m.UserID == userID {
			count++
		}
	}
	return count, nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func badgesOf(held map[models.BadgeType]*models.Badge) []*models.Badge {
	var badges []*models.Badge
	for _, b := range held {
		c := *b
		badges = append(badges, &c)
	}
	return badges
}
