package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/notify"
	"github.com/trooper-recruit/engage-api/internal/ratelimit"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"github.com/trooper-recruit/engage-api/internal/repo/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGenerator struct {
	text       string
	err        error
	lastSystem string
	lastUser   string
}

func (g *fakeGenerator) GenerateText(_ context.Context, system, question string) (string, error) {
	g.lastSystem = system
	g.lastUser = question
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

type chatFixture struct {
	chat     ChatUsecase
	users    UserUsecase
	messages repo.ChatMessageRepository
	gen      *fakeGenerator
}

func newChatFixture(limit int) *chatFixture {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	badges := memory.NewBadgeRepository(store)
	messages := memory.NewChatMessageRepository(store)
	gen := &fakeGenerator{text: "The starting salary is $72,500."}

	return &chatFixture{
		chat:     NewChatUsecase(ratelimit.NewMemoryLimiter(limit, time.Minute), gen, users, badges, messages),
		users:    NewUserUsecase(users, badges, notify.NopNotifier{}),
		messages: messages,
		gen:      gen,
	}
}

func TestAsk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("answers with matched knowledge section", func(t *testing.T) {
		f := newChatFixture(10)

		answer, err := f.chat.Ask(ctx, "1.2.3.4", primitive.NilObjectID, "What is the salary?")
		require.NoError(t, err)

		assert.Equal(t, "The starting salary is $72,500.", answer.Text)
		assert.Equal(t, "salary", answer.Source)
		assert.Contains(t, f.gen.lastSystem, "72,500")
		assert.Equal(t, "What is the salary?", f.gen.lastUser)
	})

	t.Run("unmatched question gets the general label", func(t *testing.T) {
		f := newChatFixture(10)

		answer, err := f.chat.Ask(ctx, "1.2.3.4", primitive.NilObjectID, "Hello there")
		require.NoError(t, err)
		assert.Equal(t, "general", answer.Source)
		assert.NotContains(t, f.gen.lastSystem, "Reference sections")
	})

	t.Run("completion failure returns the apology, not an error", func(t *testing.T) {
		f := newChatFixture(10)
		f.gen.err = errors.New("upstream timeout")

		answer, err := f.chat.Ask(ctx, "1.2.3.4", primitive.NilObjectID, "What is the salary?")
		require.NoError(t, err)
		assert.Equal(t, "fallback", answer.Source)
		assert.Contains(t, answer.Text, "Sorry")
	})

	t.Run("rate limit rejects the excess request", func(t *testing.T) {
		f := newChatFixture(2)

		for i := 0; i < 2; i++ {
			_, err := f.chat.Ask(ctx, "1.2.3.4", primitive.NilObjectID, "hi")
			require.NoError(t, err)
		}
		_, err := f.chat.Ask(ctx, "1.2.3.4", primitive.NilObjectID, "hi")
		assert.ErrorIs(t, err, models.ErrRateLimited)

		// a different address is unaffected
		_, err = f.chat.Ask(ctx, "5.6.7.8", primitive.NilObjectID, "hi")
		assert.NoError(t, err)
	})

	t.Run("known user earns chat badges and counters", func(t *testing.T) {
		f := newChatFixture(10)

		user, err := f.users.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com"})
		require.NoError(t, err)

		_, err = f.chat.Ask(ctx, "1.2.3.4", user.ID, "When can I apply?")
		require.NoError(t, err)

		updated, err := f.users.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.ChatCount)
		assert.Equal(t, 1, updated.ParticipationCount)
		assert.True(t, updated.Badges[models.BadgeChatParticipation])
		assert.True(t, updated.Badges[models.BadgeFirstResponse])
	})

	t.Run("unknown user id is rejected and persists nothing", func(t *testing.T) {
		f := newChatFixture(10)
		ghost := primitive.NewObjectID()

		_, err := f.chat.Ask(ctx, "1.2.3.4", ghost, "What is the salary?")
		assert.ErrorIs(t, err, models.ErrNotFound)

		count, err := f.messages.CountByUser(ctx, ghost)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("anonymous questions persist nothing", func(t *testing.T) {
		f := newChatFixture(10)

		user, err := f.users.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com"})
		require.NoError(t, err)

		_, err = f.chat.Ask(ctx, "1.2.3.4", primitive.NilObjectID, "hello")
		require.NoError(t, err)

		updated, err := f.users.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Zero(t, updated.ChatCount)
	})
}
