package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trooper-recruit/engage-api/internal/models"
	"github.com/trooper-recruit/engage-api/internal/notify"
	"github.com/trooper-recruit/engage-api/internal/repo/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingNotifier struct {
	registrations chan string
	applications  chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		registrations: make(chan string, 8),
		applications:  make(chan string, 8),
	}
}

func (n *recordingNotifier) RegistrationReceived(_ context.Context, user *models.User) error {
	n.registrations <- user.Email
	return nil
}

func (n *recordingNotifier) ApplicationStarted(_ context.Context, user *models.User) error {
	n.applications <- user.Email
	return nil
}

func waitFor(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("expected notification was not sent")
		return ""
	}
}

func newUserUsecase(notifier notify.Notifier) UserUsecase {
	store := memory.NewStore()
	return NewUserUsecase(
		memory.NewUserRepository(store),
		memory.NewBadgeRepository(store),
		notifier,
	)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates user with zeroed counters", func(t *testing.T) {
		notifier := newRecordingNotifier()
		uc := newUserUsecase(notifier)

		user, err := uc.Register(ctx, RegisterParams{Name: "Jane Doe", Email: "jane@example.com"})
		require.NoError(t, err)

		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Zero(t, user.ParticipationCount)
		assert.False(t, user.HasApplied)
		assert.False(t, user.Badges[models.BadgeWritten])

		assert.Equal(t, "jane@example.com", waitFor(t, notifier.registrations))
	})

	t.Run("email is normalized", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})

		user, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "  Jane@Example.COM "})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("resubmitting updates instead of duplicating", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})

		first, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com"})
		require.NoError(t, err)

		second, err := uc.Register(ctx, RegisterParams{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Jane Doe", second.Name)
		assert.Equal(t, "555-0100", second.Phone)
	})

	t.Run("is_applying notifies and grants the badge", func(t *testing.T) {
		notifier := newRecordingNotifier()
		uc := newUserUsecase(notifier)

		user, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com", IsApplying: true})
		require.NoError(t, err)

		assert.True(t, user.HasApplied)
		assert.True(t, user.Badges[models.BadgeApplicationStarted])
		assert.Equal(t, "jane@example.com", waitFor(t, notifier.applications))
	})
}

func TestCounterActions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	register := func(t *testing.T, uc UserUsecase) *models.UserWithBadges {
		t.Helper()
		user, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com"})
		require.NoError(t, err)
		return user
	}

	t.Run("serialized increments count exactly", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})
		user := register(t, uc)

		var last *models.UserWithBadges
		for i := 0; i < 5; i++ {
			var err error
			last, err = uc.RecordParticipation(ctx, user.ID)
			require.NoError(t, err)
		}

		assert.Equal(t, 5, last.ParticipationCount)
		assert.True(t, last.Badges[models.BadgeWritten])
	})

	t.Run("badge sync is idempotent", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})
		user := register(t, uc)

		for i := 0; i < 6; i++ {
			_, err := uc.RecordParticipation(ctx, user.ID)
			require.NoError(t, err)
		}
		again, err := uc.GetUser(ctx, user.ID)
		require.NoError(t, err)

		assert.True(t, again.Badges[models.BadgeWritten])
		assert.False(t, again.Badges[models.BadgeFrequentUser])
	})

	t.Run("download grants resource downloader", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})
		user := register(t, uc)

		updated, err := uc.RecordDownload(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.DownloadCount)
		assert.True(t, updated.Badges[models.BadgeResourceDownloader])
	})

	t.Run("unknown user returns not found", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})
		register(t, uc)

		_, err := uc.RecordParticipation(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("apply transitions once and notifies once", func(t *testing.T) {
		notifier := newRecordingNotifier()
		uc := newUserUsecase(notifier)

		user, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com"})
		require.NoError(t, err)

		applied, err := uc.Apply(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, applied.HasApplied)
		assert.True(t, applied.Badges[models.BadgeApplicationStarted])
		waitFor(t, notifier.applications)

		// second apply is a no-op: no second notification
		_, err = uc.Apply(ctx, user.ID)
		require.NoError(t, err)
		select {
		case <-notifier.applications:
			t.Fatal("re-applying must not notify again")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("completion implies applied", func(t *testing.T) {
		uc := newUserUsecase(notify.NopNotifier{})

		user, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com"})
		require.NoError(t, err)

		done, err := uc.CompleteApplication(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, done.HasApplied)
		assert.True(t, done.ApplicationCompleted)
		assert.True(t, done.Badges[models.BadgeApplicationStarted])
		assert.True(t, done.Badges[models.BadgeApplicationCompleted])
	})
}
