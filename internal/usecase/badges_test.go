package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trooper-recruit/engage-api/internal/models"
)

func TestComputeBadges(t *testing.T) {
	t.Parallel()

	t.Run("no activity earns nothing", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{})
		assert.Empty(t, badges)
	})

	t.Run("below first threshold", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{ParticipationCount: 4})
		assert.Empty(t, badges)
	})

	t.Run("first participation tier", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{ParticipationCount: 5})
		assert.Equal(t, []models.BadgeType{models.BadgeWritten}, badges)
	})

	t.Run("jump grants all intermediate tiers", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{ParticipationCount: 16})
		assert.ElementsMatch(t, []models.BadgeType{
			models.BadgeWritten,
			models.BadgeFrequentUser,
			models.BadgeOral,
		}, badges)
	})

	t.Run("top tier includes everything below it", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{ParticipationCount: 120})
		assert.ElementsMatch(t, []models.BadgeType{
			models.BadgeWritten,
			models.BadgeFrequentUser,
			models.BadgeOral,
			models.BadgePhysical,
			models.BadgePolygraph,
			models.BadgePsychological,
			models.BadgeFull,
		}, badges)
	})

	t.Run("chat grants participation and first response together", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{ChatCount: 1})
		assert.ElementsMatch(t, []models.BadgeType{
			models.BadgeChatParticipation,
			models.BadgeFirstResponse,
		}, badges)
	})

	t.Run("application flags", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{HasApplied: true})
		assert.Equal(t, []models.BadgeType{models.BadgeApplicationStarted}, badges)

		badges = ComputeBadges(BadgeCounters{HasApplied: true, ApplicationCompleted: true})
		assert.ElementsMatch(t, []models.BadgeType{
			models.BadgeApplicationStarted,
			models.BadgeApplicationCompleted,
		}, badges)
	})

	t.Run("download badge", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{DownloadCount: 2})
		assert.Equal(t, []models.BadgeType{models.BadgeResourceDownloader}, badges)
	})

	t.Run("idempotent for identical counters", func(t *testing.T) {
		counters := BadgeCounters{ParticipationCount: 31, ChatCount: 3, HasApplied: true}
		assert.Equal(t, ComputeBadges(counters), ComputeBadges(counters))
	})

	t.Run("referrals never earn a badge", func(t *testing.T) {
		badges := ComputeBadges(BadgeCounters{ReferralCount: 50})
		assert.Empty(t, badges)
	})
}
