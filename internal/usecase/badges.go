package usecase

import "github.com/trooper-recruit/engage-api/internal/models"

// BadgeCounters is the full input of badge evaluation. Everything a badge
// decision depends on lives here so ComputeBadges stays a pure function.
type BadgeCounters struct {
	ParticipationCount   int
	ReferralCount        int
	DownloadCount        int
	ChatCount            int
	HasApplied           bool
	ApplicationCompleted bool
}

// participationTiers maps the engagement milestones to exam-stage badges.
// This table is the single source of truth for thresholds.
var participationTiers = []struct {
	min   int
	badge models.BadgeType
}{
	{5, models.BadgeWritten},
	{10, models.BadgeFrequentUser},
	{15, models.BadgeOral},
	{30, models.BadgePhysical},
	{50, models.BadgePolygraph},
	{75, models.BadgePsychological},
	{100, models.BadgeFull},
}

// ComputeBadges returns every badge the counters justify. It is evaluated
// against absolute counters rather than deltas, so a user jumping several
// thresholds in one update earns all of them, and re-running it changes
// nothing. Revocation is not a concept here: persisting the result only
// ever adds rows.
func ComputeBadges(c BadgeCounters) []models.BadgeType {
	var badges []models.BadgeType

	for _, tier := range participationTiers {
		if c.ParticipationCount >= tier.min {
			badges = append(badges, tier.badge)
		}
	}

	if c.ChatCount >= 1 {
		badges = append(badges, models.BadgeChatParticipation, models.BadgeFirstResponse)
	}
	if c.DownloadCount >= 1 {
		badges = append(badges, models.BadgeResourceDownloader)
	}
	if c.HasApplied {
		badges = append(badges, models.BadgeApplicationStarted)
	}
	if c.ApplicationCompleted {
		badges = append(badges, models.BadgeApplicationCompleted)
	}

	return badges
}

func countersOf(user *models.User) BadgeCounters {
	return BadgeCounters{
		ParticipationCount:   user.ParticipationCount,
		ReferralCount:        user.ReferralCount,
		DownloadCount:        user.DownloadCount,
		ChatCount:            user.ChatCount,
		HasApplied:           user.HasApplied,
		ApplicationCompleted: user.ApplicationCompleted,
	}
}
